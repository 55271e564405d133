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

// Package logging configures structured JSON logging on top of log/slog.
//
// Every binary calls SetDefaultStructuredLogger early in main so that all
// packages can log through the slog package-level functions:
//
//	logging.SetDefaultStructuredLogger("nutrilensd", version)
//	slog.Info("model loaded", "name", info.Name, "digest", info.Digest)
//
// Logs are written to stderr as JSON and carry "module" and "version"
// attributes. Debug level adds source location.
//
// # Log Levels
//
// The LOG_LEVEL environment variable (debug, info, warn, error; case
// insensitive) selects the level when no explicit level is given. Unknown
// values fall back to info.
//
// # Legacy loggers
//
// NewLogLogger bridges code that expects a *log.Logger, such as
// http.Server.ErrorLog, into the same handler.
package logging
