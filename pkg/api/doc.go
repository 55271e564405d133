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

// Package api provides the HTTP API layer for the nutrilens model service.
//
// This package is a thin wrapper around pkg/server: it loads the model once
// at startup, builds an immutable prediction.Service from it and registers
// the service handlers.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
//   - POST /predict - Predict a rating and disease label from 28 features
//   - GET /model    - Metadata of the loaded model
//   - GET /health   - Liveness probe
//   - GET /ready    - Readiness probe
//   - GET /metrics  - Prometheus metrics
//
// Example:
//
//	curl -X POST http://localhost:8000/predict \
//	  -H "Content-Type: application/json" \
//	  -d @payload.json
//
// # Configuration
//
//   - MODEL_PATH: model location (default: model.yaml). Accepts a file path,
//     an http(s) URL, cm://namespace/name or oci://registry/repo:tag
//   - PORT: HTTP server port (default: 8000)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// A model that fails to load aborts startup.
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/AakashTiwari-nitp/nutrilens/pkg/api.version=1.0.0'"
package api
