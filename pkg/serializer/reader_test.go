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

package serializer

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"model.json", FormatJSON},
		{"MODEL.JSON", FormatJSON},
		{"model.yaml", FormatYAML},
		{"model.yml", FormatYAML},
		{"model", FormatYAML},
		{"https://example.com/models/rater.json", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader_RejectsTableAndUnknown(t *testing.T) {
	if _, err := NewReader(FormatTable, strings.NewReader("")); err == nil {
		t.Error("expected error for table format")
	}
	if _, err := NewReader(Format("xml"), strings.NewReader("")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestReader_DeserializeJSONUsesNumber(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader(`{"calories": 250.5, "name": "x"}`))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var m map[string]any
	if err := r.Deserialize(&m); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	n, ok := m["calories"].(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", m["calories"])
	}
	if n.String() != "250.5" {
		t.Errorf("got %s, want 250.5", n)
	}
}

func TestReader_DeserializeYAML(t *testing.T) {
	r, err := NewReader(FormatYAML, strings.NewReader("name: test1\nvalue: 9\n"))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var cfg testConfig
	if err := r.Deserialize(&cfg); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if cfg.Name != test1Name || cfg.Value != 9 {
		t.Errorf("unexpected result: %+v", cfg)
	}
}

func TestReader_DeserializeInvalid(t *testing.T) {
	r, err := NewReader(FormatJSON, strings.NewReader(`{"name":`))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var cfg testConfig
	if err := r.Deserialize(&cfg); err == nil {
		t.Error("expected decode error")
	}
}

func TestReader_NilSafe(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testConfig{}); err == nil {
		t.Error("expected error from nil reader")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader returned %v", err)
	}
}

func TestFromBytes(t *testing.T) {
	cfg, err := FromBytes[testConfig]("cfg.json", []byte(`{"name":"test1","value":3}`))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if cfg.Name != test1Name || cfg.Value != 3 {
		t.Errorf("unexpected result: %+v", cfg)
	}

	// YAML fallback reads JSON too
	cfg, err = FromBytes[testConfig]("cfg", []byte(`{"name":"test1","value":4}`))
	if err != nil {
		t.Fatalf("FromBytes YAML fallback failed: %v", err)
	}
	if cfg.Value != 4 {
		t.Errorf("unexpected value: %d", cfg.Value)
	}

	if _, err := FromBytes[testConfig]("cfg.yaml", []byte("name: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
