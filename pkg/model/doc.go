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

// Package model loads declarative prediction models and compiles them into
// immutable predictors.
//
// A model artifact is a YAML or JSON document:
//
//	kind: Model
//	apiVersion: nutrilens.io/v1alpha1
//	metadata:
//	  name: food-rater
//	  version: "1.0.0"
//	spec:
//	  type: linear
//	  outputs:
//	    - name: rating
//	      intercept: 3.2
//	      weights: [ ... one per feature ... ]
//	      min: 0
//	      max: 5
//	    - name: disease
//	      intercept: 5
//	      weights: [ ... ]
//
// Two predictor types are supported. A linear output is the intercept plus
// the dot product of its weights with the feature row. A cel output is a
// CEL expression over the feature names, each declared as a double; it
// may evaluate to a number or a list of numbers, and lists are flattened
// into the output row.
//
// Each output may be clamped with min and max. Predict returns one output
// row per input row; every input row must have features.Count columns.
//
// Load fetches an artifact through pkg/artifact, so any location it
// understands (path, URL, cm://, oci://) can hold a model:
//
//	m, err := model.Load(ctx, "oci://ghcr.io/org/food-rater:1.0.0")
//	if err != nil {
//		return err
//	}
//	out, err := m.Predict(ctx, [][]float64{vec.Row()})
//
// Compiled predictors hold no mutable state and are safe for concurrent use.
package model
