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

// Package errors defines the structured error type shared by nutrilens
// packages.
//
// A StructuredError carries an ErrorCode for programmatic handling, a human
// readable message, an optional underlying cause and optional key/value
// context. The HTTP layer (pkg/server) maps codes to status codes, so
// packages below it never deal with HTTP directly:
//
//	if len(problems) > 0 {
//	    return errors.NewWithContext(errors.ErrCodeValidationFailed,
//	        "request failed validation", map[string]any{"errors": problems})
//	}
//
// Wrapped causes remain reachable through errors.Is and errors.As from the
// standard library.
package errors
