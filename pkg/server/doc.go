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

// Package server provides the HTTP server shared by the nutrilens daemon.
//
// The server owns the process plumbing: routing, middleware, error
// responses, health probes, metrics and graceful shutdown. Domain
// handlers are registered by the caller.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("nutrilensd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/predict": svc.HandlePredict,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Built-in Endpoints
//
// GET /health - Liveness probe
//
//	Always returns 200 OK with the JSON string "server is running properly".
//
// GET /ready - Readiness probe
//
//	Returns 200 OK when serving, 503 during startup and shutdown.
//
// GET /metrics - Prometheus metrics
//
// GET / - Service name, version, readiness and registered routes
//
// # Middleware
//
// Every registered route is wrapped with, in order:
//
//	metrics -> CORS -> API version -> request ID -> panic recovery -> body limit -> logging
//
// CORS allows any origin. Preflight (OPTIONS) requests are answered with
// 204 No Content and never reach the route handler.
//
// Request IDs are taken from the X-Request-Id header when it holds a UUID,
// otherwise generated, and echoed in the X-Request-Id response header.
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "VALIDATION_FAILED",
//	  "message": "invalid features",
//	  "details": {"errors": [{"field": "bmi", "reason": "missing"}]},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-22T12:00:00Z",
//	  "retryable": false
//	}
//
// Codes map to HTTP status as follows:
//   - INVALID_REQUEST: 400
//   - NOT_FOUND: 404
//   - METHOD_NOT_ALLOWED: 405
//   - VALIDATION_FAILED: 422
//   - INTERNAL: 500
//   - SERVICE_UNAVAILABLE: 503
//   - TIMEOUT: 504
//
// # Configuration
//
// Environment variables:
//   - PORT: listening port (default 8000)
//   - ADDRESS: listening address (default all interfaces)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown timeout in seconds
//
// When running under systemd with Type=notify, the server reports
// READY=1 once listening and STOPPING=1 when shutting down.
package server
