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

// Package prediction turns a feature vector into a rating and a disease
// label using a loaded model.
//
// A Service is built once from a model and shared by every request.
// Raw predictor output is normalized exactly once into a tagged Result:
//
//   - one output column yields RatingOnly
//   - two or more columns yield RatingWithDiseaseCode, the second column
//     truncated toward zero
//
// Disease codes map to labels through a fixed table. Codes outside the
// table, including the RatingOnly sentinel, resolve to "None".
//
// # HTTP
//
//	POST /predict  - JSON object with the 28 features
//	GET  /model    - metadata of the loaded model
//
// Malformed JSON or a non-object body is answered with 400. Missing or
// non-numeric features are answered with 422 listing every offending field.
// Predictor failures are answered with 500.
package prediction
