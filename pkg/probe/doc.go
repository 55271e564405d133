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

// Package probe sends the fixed example request to a running model
// service and reports the decoded response.
//
// It is a smoke test only: no retries and no assertions on the values
// returned. With Repeat greater than one the identical payload is sent
// several times, paced by a token bucket, and the report states whether
// every response body was identical.
package probe
