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

package features

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reasons reported in a FieldError.
const (
	ReasonMissing    = "missing"
	ReasonNotANumber = "not a number"
)

// FieldError describes one feature that could not be decoded.
type FieldError struct {
	Field  string `json:"field" yaml:"field"`
	Reason string `json:"reason" yaml:"reason"`
}

// ValidationError lists every offending feature in canonical order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("invalid features: %s", strings.Join(parts, ", "))
}

// Decode builds a Vector from an object keyed by feature name.
// All features are checked before returning so the error names
// every offending field.
func Decode(obj map[string]any) (Vector, error) {
	var (
		v    Vector
		errs []FieldError
	)
	for i, name := range Names {
		raw, ok := obj[name]
		if !ok {
			errs = append(errs, FieldError{Field: name, Reason: ReasonMissing})
			continue
		}
		f, ok := Coerce(raw)
		if !ok {
			errs = append(errs, FieldError{Field: name, Reason: ReasonNotANumber})
			continue
		}
		v[i] = f
	}
	if len(errs) > 0 {
		return Vector{}, &ValidationError{Fields: errs}
	}
	return v, nil
}

// FromMap builds a Vector from float values keyed by feature name.
func FromMap(m map[string]float64) (Vector, error) {
	obj := make(map[string]any, len(m))
	for k, val := range m {
		obj[k] = val
	}
	return Decode(obj)
}

// Coerce converts a decoded JSON or YAML scalar to a finite float64.
// Strings are trimmed and parsed; booleans map to 1 and 0. Null,
// containers and non-finite values are rejected. That includes "nan",
// "inf" and out-of-range literals such as 1e400, which a lax float
// parser would accept and pass on to the model; here they fail
// validation with 422 instead of failing inference with 500.
func Coerce(raw any) (float64, bool) {
	var f float64
	switch val := raw.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if val {
			f = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
