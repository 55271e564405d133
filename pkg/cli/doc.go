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

// Package cli implements the nutrilens command-line interface.
//
// # Commands
//
// probe - Smoke test a running service:
//
//	nutrilens probe [--url http://127.0.0.1:8000/predict] [--repeat N] [--qps Q]
//
// Posts the fixed example payload and prints the decoded response. With
// --repeat the full report is printed, including whether all responses
// were identical.
//
// predict - Offline inference:
//
//	nutrilens predict --model model.yaml --input features.json
//
// Runs the same decoding, inference and normalization as POST /predict
// without a server.
//
// model - Inspect or publish a model artifact:
//
//	nutrilens model --model oci://ghcr.io/example/food-rater:1.0.0
//	nutrilens model push --model model.yaml --target oci://ghcr.io/example/food-rater:1.0.0
//
// features - List the canonical feature order:
//
//	nutrilens features --format table
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// # Model Sources
//
// Every --model flag accepts a file path, an http(s) URL, a ConfigMap URI
// (cm://namespace/name, reading key model.yaml or model.json) or an OCI
// reference (oci://registry/repo[:tag]).
package cli
