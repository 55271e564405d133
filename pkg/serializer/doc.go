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

// Package serializer reads and writes structured data as JSON, YAML or a
// flattened table.
//
// Writers render CLI output:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, info); err != nil {
//		return err
//	}
//
// Readers decode documents such as model artifacts and feature inputs:
//
//	r, err := serializer.NewReader(serializer.FormatFromPath(name), bytes.NewReader(data))
//	if err != nil {
//		return err
//	}
//	var doc Document
//	err = r.Deserialize(&doc)
//
// HTTP handlers respond with RespondJSON, which encodes into a buffer before
// writing headers so a failed encode never produces a partial response.
//
// HttpReader fetches remote documents with pooled connections, TLS 1.2+
// and the client timeouts from pkg/defaults.
package serializer
