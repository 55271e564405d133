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
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/defaults"
	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
)

type celOutput struct {
	name   string
	prog   cel.Program
	bounds bounds
}

type celPredictor struct {
	outputs []celOutput
}

// newEnv declares every feature as a double variable.
func newEnv() (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, features.Count)
	for _, name := range features.Names {
		opts = append(opts, cel.Variable(name, cel.DoubleType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

func newCEL(spec Spec) (*celPredictor, error) {
	env, err := newEnv()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to build CEL environment", err)
	}

	p := &celPredictor{outputs: make([]celOutput, len(spec.Outputs))}
	for i, o := range spec.Outputs {
		prog, err := compileOutput(env, o.Expression)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("output %q does not compile", o.Name), err,
				map[string]any{"output": o.Name, "expression": o.Expression})
		}
		p.outputs[i] = celOutput{name: o.Name, prog: prog, bounds: newBounds(o)}
	}
	return p, nil
}

func compileOutput(env *cel.Env, expr string) (cel.Program, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	switch ast.OutputType().Kind() {
	case types.DoubleKind, types.IntKind, types.UintKind, types.ListKind, types.DynKind:
	default:
		return nil, fmt.Errorf("expression must evaluate to a number or list of numbers, got %s", ast.OutputType())
	}

	prog, err := env.Program(ast, cel.CostLimit(defaults.CELCostLimit))
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}
	return prog, nil
}

func (p *celPredictor) Predict(ctx context.Context, rows [][]float64) ([][]float64, error) {
	if err := checkRows(rows); err != nil {
		return nil, err
	}

	out := make([][]float64, len(rows))
	for r, row := range rows {
		vars := make(map[string]any, features.Count)
		for i, name := range features.Names {
			vars[name] = row[i]
		}

		res := make([]float64, 0, len(p.outputs))
		for _, o := range p.outputs {
			val, _, err := o.prog.ContextEval(ctx, vars)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate output %q: %w", o.name, err)
			}
			nums, err := numbers(val)
			if err != nil {
				return nil, fmt.Errorf("output %q: %w", o.name, err)
			}
			for _, n := range nums {
				res = append(res, o.bounds.clamp(n))
			}
		}
		out[r] = res
	}
	return out, nil
}

// numbers converts a CEL result to a flat list of floats.
func numbers(val ref.Val) ([]float64, error) {
	if f, ok := number(val); ok {
		return []float64{f}, nil
	}

	list, ok := val.(traits.Lister)
	if !ok {
		return nil, fmt.Errorf("result of type %s is not numeric", val.Type().TypeName())
	}

	size, ok := list.Size().(types.Int)
	if !ok {
		return nil, fmt.Errorf("list result has no size")
	}
	nums := make([]float64, 0, int(size))
	for i := types.Int(0); i < size; i++ {
		elem := list.Get(i)
		f, ok := number(elem)
		if !ok {
			return nil, fmt.Errorf("list element %d of type %s is not numeric", i, elem.Type().TypeName())
		}
		nums = append(nums, f)
	}
	return nums, nil
}

func number(val ref.Val) (float64, bool) {
	switch v := val.(type) {
	case types.Double:
		return float64(v), true
	case types.Int:
		return float64(v), true
	case types.Uint:
		return float64(v), true
	default:
		return 0, false
	}
}
