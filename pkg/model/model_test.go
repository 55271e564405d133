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
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
)

// exampleRow is the reference request used by the probe.
func exampleRow() []float64 {
	var v features.Vector
	set := func(name string, val float64) {
		i, _ := features.Index(name)
		v[i] = val
	}
	set("calories", 100)
	set("protein_g", 2)
	set("fat_g", 1)
	set("sat_fat_g", 1)
	set("potassium_mg", 1)
	set("calcium_mg", 1)
	return v.Row()
}

func zeros() []float64 {
	return make([]float64, features.Count)
}

func linearDoc(outputs ...Output) *Document {
	return &Document{
		Kind:       Kind,
		APIVersion: APIVersion,
		Metadata:   Metadata{Name: "test"},
		Spec:       Spec{Type: TypeLinear, Outputs: outputs},
	}
}

func celDoc(exprs ...string) *Document {
	d := &Document{
		Kind:       Kind,
		APIVersion: APIVersion,
		Metadata:   Metadata{Name: "test"},
		Spec:       Spec{Type: TypeCEL},
	}
	for i, e := range exprs {
		d.Spec.Outputs = append(d.Spec.Outputs, Output{Name: string(rune('a' + i)), Expression: e})
	}
	return d
}

func TestLoadLinear(t *testing.T) {
	m, err := Load(context.Background(), "testdata/linear.yaml")
	require.NoError(t, err)

	assert.Equal(t, "food-rater", m.Info.Name)
	assert.Equal(t, "1.0.0", m.Info.Version)
	assert.Equal(t, TypeLinear, m.Info.Type)
	assert.Equal(t, []string{"rating", "disease"}, m.Info.Outputs)
	assert.Equal(t, features.Count, m.Info.Features)
	assert.True(t, strings.HasPrefix(m.Info.Digest, "sha256:"))

	out, err := m.Predict(context.Background(), [][]float64{exampleRow()})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0], 2)
	assert.InDelta(t, 3.8009, out[0][0], 1e-9)
	assert.Equal(t, -1.0, out[0][1])
}

func TestLoadCEL(t *testing.T) {
	m, err := Load(context.Background(), "testdata/cel.yaml")
	require.NoError(t, err)
	assert.Equal(t, TypeCEL, m.Info.Type)

	diabetic := exampleRow()
	i, _ := features.Index("diabetes_flag")
	diabetic[i] = 1

	out, err := m.Predict(context.Background(), [][]float64{exampleRow(), diabetic})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 4.7, out[0][0], 1e-9)
	assert.Equal(t, -1.0, out[0][1])
	assert.Equal(t, 1.0, out[1][1])
}

func TestLoadJSONRatingOnly(t *testing.T) {
	m, err := Load(context.Background(), "testdata/rating-only.json")
	require.NoError(t, err)

	out, err := m.Predict(context.Background(), [][]float64{zeros()})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2.5}}, out)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), "testdata/absent.yaml")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("model.yaml", []byte("spec: [unterminated"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestValidate(t *testing.T) {
	weights := zeros()
	reordered := append([]string(nil), features.Names[:]...)
	reordered[0], reordered[1] = reordered[1], reordered[0]

	tests := []struct {
		name    string
		doc     func() *Document
		problem string
	}{
		{"wrong kind", func() *Document {
			d := linearDoc(Output{Name: "r", Weights: weights})
			d.Kind = "Pipeline"
			return d
		}, "kind must be"},
		{"wrong api version", func() *Document {
			d := linearDoc(Output{Name: "r", Weights: weights})
			d.APIVersion = "v2"
			return d
		}, "apiVersion"},
		{"missing name", func() *Document {
			d := linearDoc(Output{Name: "r", Weights: weights})
			d.Metadata.Name = " "
			return d
		}, "metadata.name"},
		{"unknown type", func() *Document {
			d := linearDoc(Output{Name: "r", Weights: weights})
			d.Spec.Type = "pickle"
			return d
		}, "spec.type"},
		{"no outputs", func() *Document {
			return linearDoc()
		}, "spec.outputs"},
		{"too many outputs", func() *Document {
			d := linearDoc()
			for i := 0; i < 9; i++ {
				d.Spec.Outputs = append(d.Spec.Outputs, Output{Name: string(rune('a' + i)), Weights: weights})
			}
			return d
		}, "spec.outputs"},
		{"duplicate output", func() *Document {
			return linearDoc(Output{Name: "r", Weights: weights}, Output{Name: "r", Weights: weights})
		}, "duplicated"},
		{"wrong weight count", func() *Document {
			return linearDoc(Output{Name: "r", Weights: []float64{1, 2}})
		}, "weights must have 28"},
		{"min above max", func() *Document {
			return linearDoc(Output{Name: "r", Weights: weights, Min: ptr.To(5.0), Max: ptr.To(1.0)})
		}, "exceeds max"},
		{"wrong feature order", func() *Document {
			d := linearDoc(Output{Name: "r", Weights: weights})
			d.Spec.Features = reordered
			return d
		}, "spec.features[0]"},
		{"short feature list", func() *Document {
			d := linearDoc(Output{Name: "r", Weights: weights})
			d.Spec.Features = []string{"calories"}
			return d
		}, "spec.features must list"},
		{"missing expression", func() *Document {
			return celDoc("  ")
		}, "expression is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc().Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.problem)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
		})
	}
}

func TestValidateCanonicalFeatureOrder(t *testing.T) {
	d := linearDoc(Output{Name: "r", Weights: zeros()})
	d.Spec.Features = features.Names[:]
	assert.NoError(t, d.Validate())
}

func TestLinearPredict(t *testing.T) {
	w := zeros()
	w[0] = 0.5
	w[27] = -1
	p, err := Compile(linearDoc(
		Output{Name: "raw", Intercept: 1, Weights: w},
		Output{Name: "clamped", Intercept: 10, Weights: w, Max: ptr.To(5.0)},
	))
	require.NoError(t, err)

	row := zeros()
	row[0] = 4
	row[27] = 1

	out, err := p.Predict(context.Background(), [][]float64{row, zeros()})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 5}, {1, 5}}, out)
}

func TestPredictRejectsShortRow(t *testing.T) {
	lin, err := Compile(linearDoc(Output{Name: "r", Weights: zeros()}))
	require.NoError(t, err)
	cel, err := Compile(celDoc("calories"))
	require.NoError(t, err)

	for _, p := range []Predictor{lin, cel} {
		_, err := p.Predict(context.Background(), [][]float64{{1, 2, 3}})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
	}
}

func TestCELOutputs(t *testing.T) {
	row := exampleRow()

	tests := []struct {
		name string
		expr []string
		want []float64
	}{
		{"double", []string{"calories * 2.0"}, []float64{200}},
		{"int", []string{"3"}, []float64{3}},
		{"uint", []string{"7u"}, []float64{7}},
		{"list flattened", []string{"[calories / 100.0, 2]"}, []float64{1, 2}},
		{"multiple outputs", []string{"protein_g", "[fat_g, 5u]"}, []float64{2, 1, 5}},
		{"empty list", []string{"[]"}, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(celDoc(tt.expr...))
			require.NoError(t, err)

			out, err := p.Predict(context.Background(), [][]float64{row})
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0])
		})
	}
}

func TestCELClamp(t *testing.T) {
	d := celDoc("[calories, -calories]")
	d.Spec.Outputs[0].Min = ptr.To(0.0)
	d.Spec.Outputs[0].Max = ptr.To(50.0)

	p, err := Compile(d)
	require.NoError(t, err)

	out, err := p.Predict(context.Background(), [][]float64{exampleRow()})
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 0}, out[0])
}

func TestCELCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"syntax", "calories +"},
		{"unknown variable", "sugar * 2.0"},
		{"string result", `"five"`},
		{"bool result", "calories > 1.0"},
		{"type mismatch", "calories + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(celDoc(tt.expr))
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
		})
	}
}

func TestCELNonNumericListElement(t *testing.T) {
	p, err := Compile(celDoc(`[1.0, "x"]`))
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), [][]float64{zeros()})
	assert.Error(t, err)
}

func TestCELEvaluationError(t *testing.T) {
	p, err := Compile(celDoc("int(calories) / int(fat_g)"))
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), [][]float64{zeros()})
	assert.Error(t, err)
}

func TestModelPredictConcurrent(t *testing.T) {
	m, err := Load(context.Background(), "testdata/cel.yaml")
	require.NoError(t, err)

	want, err := m.Predict(context.Background(), [][]float64{exampleRow()})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Predict(context.Background(), [][]float64{exampleRow()})
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestModelPredictPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	m := New(Info{Name: "failing", Type: TypeLinear}, PredictorFunc(func(context.Context, [][]float64) ([][]float64, error) {
		return nil, boom
	}))

	_, err := m.Predict(context.Background(), [][]float64{zeros()})
	assert.ErrorIs(t, err, boom)
}
