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
	"math"
	"strings"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/defaults"
	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
)

const (
	// Kind is the document kind of a model artifact.
	Kind = "Model"
	// APIVersion is the supported artifact schema version.
	APIVersion = "nutrilens.io/v1alpha1"
)

// Type selects how outputs are computed.
type Type string

const (
	TypeLinear Type = "linear"
	TypeCEL    Type = "cel"
)

// Document is a model artifact.
type Document struct {
	Kind       string   `json:"kind" yaml:"kind"`
	APIVersion string   `json:"apiVersion" yaml:"apiVersion"`
	Metadata   Metadata `json:"metadata" yaml:"metadata"`
	Spec       Spec     `json:"spec" yaml:"spec"`
}

// Metadata identifies a model.
type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Spec describes the predictor.
type Spec struct {
	Type Type `json:"type" yaml:"type"`
	// Features optionally declares the input order the model was built
	// for. When set it must match features.Names exactly.
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`
	Outputs  []Output `json:"outputs" yaml:"outputs"`
}

// Output is one column of the prediction row.
type Output struct {
	Name       string    `json:"name" yaml:"name"`
	Intercept  float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`
	Weights    []float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	Expression string    `json:"expression,omitempty" yaml:"expression,omitempty"`
	Min        *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

// Predictor maps input rows to output rows.
type Predictor interface {
	Predict(ctx context.Context, rows [][]float64) ([][]float64, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, rows [][]float64) ([][]float64, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, rows [][]float64) ([][]float64, error) {
	return f(ctx, rows)
}

// Validate checks the document and reports every problem found.
func (d *Document) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if d.Kind != Kind {
		add("kind must be %q, got %q", Kind, d.Kind)
	}
	if d.APIVersion != APIVersion {
		add("apiVersion must be %q, got %q", APIVersion, d.APIVersion)
	}
	if strings.TrimSpace(d.Metadata.Name) == "" {
		add("metadata.name is required")
	}

	switch d.Spec.Type {
	case TypeLinear, TypeCEL:
	default:
		add("spec.type must be %q or %q, got %q", TypeLinear, TypeCEL, d.Spec.Type)
	}

	if err := checkFeatureOrder(d.Spec.Features); err != nil {
		add("%v", err)
	}

	n := len(d.Spec.Outputs)
	if n == 0 || n > defaults.MaxModelOutputs {
		add("spec.outputs must have 1 to %d entries, got %d", defaults.MaxModelOutputs, n)
	}

	seen := make(map[string]bool, n)
	for i, o := range d.Spec.Outputs {
		path := fmt.Sprintf("spec.outputs[%d]", i)
		switch {
		case o.Name == "":
			add("%s.name is required", path)
		case seen[o.Name]:
			add("%s.name %q is duplicated", path, o.Name)
		}
		seen[o.Name] = true

		if o.Min != nil && o.Max != nil && *o.Min > *o.Max {
			add("%s.min %v exceeds max %v", path, *o.Min, *o.Max)
		}

		switch d.Spec.Type {
		case TypeLinear:
			if len(o.Weights) != features.Count {
				add("%s.weights must have %d entries, got %d", path, features.Count, len(o.Weights))
			}
			if !finite(o.Intercept) || !allFinite(o.Weights) {
				add("%s has non-finite coefficients", path)
			}
		case TypeCEL:
			if strings.TrimSpace(o.Expression) == "" {
				add("%s.expression is required", path)
			}
		}
	}

	if len(problems) > 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid model: "+strings.Join(problems, "; "),
			map[string]any{"problems": problems})
	}
	return nil
}

func checkFeatureOrder(declared []string) error {
	if len(declared) == 0 {
		return nil
	}
	if len(declared) != features.Count {
		return fmt.Errorf("spec.features must list %d features, got %d", features.Count, len(declared))
	}
	for i, name := range declared {
		if name != features.Names[i] {
			return fmt.Errorf("spec.features[%d] is %q, expected %q", i, name, features.Names[i])
		}
	}
	return nil
}

// OutputNames returns the declared output names in order.
func (d *Document) OutputNames() []string {
	names := make([]string, len(d.Spec.Outputs))
	for i, o := range d.Spec.Outputs {
		names[i] = o.Name
	}
	return names
}

func checkRows(rows [][]float64) error {
	for i, row := range rows {
		if len(row) != features.Count {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), features.Count),
				map[string]any{"row": i})
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func allFinite(fs []float64) bool {
	for _, f := range fs {
		if !finite(f) {
			return false
		}
	}
	return true
}
