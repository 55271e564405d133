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

// Package features defines the 28 nutrition and health inputs a model
// consumes and the canonical order in which they are presented.
//
// A Vector is decoded from a JSON or YAML object keyed by feature name.
// Each value must be present and coercible to float64. Numbers,
// numeric strings and booleans are accepted; everything else is reported
// as a FieldError. Unknown keys are ignored.
//
//	v, err := features.Decode(body)
//	if err != nil {
//		var verr *features.ValidationError
//		...
//	}
//	rows := [][]float64{v.Row()}
package features
