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

// Package artifact fetches the raw bytes of a model artifact.
//
// A location is resolved by its scheme:
//
//	model.yaml                       local file
//	https://example.com/model.yaml   HTTP(S) GET
//	cm://nutrilens/food-rater        Kubernetes ConfigMap, key model.yaml or model.json
//	oci://ghcr.io/org/model:1.0.0    OCI artifact pulled with ORAS
//
// Every fetch returns an Artifact carrying the bytes, a name usable for
// format detection and the sha256 digest of the content.
//
// ConfigMap access discovers cluster configuration from KUBECONFIG,
// ~/.kube/config or the in-cluster service account. OCI pulls use Docker
// credentials when present; the tag defaults to "latest".
//
// Push publishes a local artifact file to an OCI registry so it can later
// be served with an oci:// location.
package artifact
