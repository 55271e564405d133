// Copyright (c) 2026, The nutrilens Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"context"
	"math"

	"k8s.io/utils/ptr"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
)

type bounds struct {
	min, max float64
}

func newBounds(o Output) bounds {
	return bounds{
		min: ptr.Deref(o.Min, math.Inf(-1)),
		max: ptr.Deref(o.Max, math.Inf(1)),
	}
}

func (b bounds) clamp(v float64) float64 {
	return math.Min(math.Max(v, b.min), b.max)
}

type linearOutput struct {
	intercept float64
	weights   [features.Count]float64
	bounds    bounds
}

type linearPredictor struct {
	outputs []linearOutput
}

func newLinear(spec Spec) *linearPredictor {
	p := &linearPredictor{outputs: make([]linearOutput, len(spec.Outputs))}
	for i, o := range spec.Outputs {
		lo := linearOutput{intercept: o.Intercept, bounds: newBounds(o)}
		copy(lo.weights[:], o.Weights)
		p.outputs[i] = lo
	}
	return p
}

func (p *linearPredictor) Predict(ctx context.Context, rows [][]float64) ([][]float64, error) {
	if err := checkRows(rows); err != nil {
		return nil, err
	}

	out := make([][]float64, len(rows))
	for r, row := range rows {
		res := make([]float64, len(p.outputs))
		for j, o := range p.outputs {
			sum := o.intercept
			for i, w := range o.weights {
				sum += w * row[i]
			}
			res[j] = o.bounds.clamp(sum)
		}
		out[r] = res
	}
	return out, nil
}
