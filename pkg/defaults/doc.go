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

// Package defaults provides centralized timeout and sizing constants for
// nutrilens.
//
// Values are grouped by component:
//
//   - Server timeouts: net/http server configuration and shutdown
//   - Artifact timeouts: fetching the model artifact at startup
//   - HTTP client timeouts: outbound requests (artifact download, probe)
//   - Model limits: artifact size and CEL evaluation cost
//
// Import and use constants directly:
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ArtifactFetchTimeout)
//	defer cancel()
package defaults
