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

package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/artifact"
	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/serializer"
)

// Info describes a loaded model.
type Info struct {
	Name     string   `json:"name" yaml:"name"`
	Version  string   `json:"version,omitempty" yaml:"version,omitempty"`
	Type     Type     `json:"type" yaml:"type"`
	Outputs  []string `json:"outputs" yaml:"outputs"`
	Features int      `json:"features" yaml:"features"`
	Source   string   `json:"source" yaml:"source"`
	Digest   string   `json:"digest" yaml:"digest"`
}

// Model is a compiled predictor together with its metadata.
type Model struct {
	Info      Info
	predictor Predictor
}

// New wraps a predictor with metadata. Mostly useful in tests and for
// embedding custom predictors.
func New(info Info, p Predictor) *Model {
	return &Model{Info: info, predictor: p}
}

// Predict runs the predictor and records inference metrics.
func (m *Model) Predict(ctx context.Context, rows [][]float64) ([][]float64, error) {
	start := time.Now()
	out, err := m.predictor.Predict(ctx, rows)
	inferenceDuration.WithLabelValues(string(m.Info.Type)).Observe(time.Since(start).Seconds())
	if err != nil {
		inferenceErrors.WithLabelValues(string(m.Info.Type)).Inc()
		return nil, err
	}
	return out, nil
}

// Compile builds a predictor from a validated document.
func Compile(doc *Document) (Predictor, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	switch doc.Spec.Type {
	case TypeLinear:
		return newLinear(doc.Spec), nil
	case TypeCEL:
		return newCEL(doc.Spec)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported model type %q", doc.Spec.Type))
	}
}

// Parse decodes a model document. name selects the format as in
// serializer.FormatFromPath.
func Parse(name string, data []byte) (*Document, error) {
	doc, err := serializer.FromBytes[Document](name, data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to parse model", err)
	}
	return doc, nil
}

// FromArtifact parses, validates and compiles a fetched artifact.
func FromArtifact(a *artifact.Artifact) (*Model, error) {
	doc, err := Parse(a.Name, a.Data)
	if err != nil {
		return nil, err
	}

	p, err := Compile(doc)
	if err != nil {
		return nil, err
	}

	m := New(Info{
		Name:     doc.Metadata.Name,
		Version:  doc.Metadata.Version,
		Type:     doc.Spec.Type,
		Outputs:  doc.OutputNames(),
		Features: features.Count,
		Source:   a.Source,
		Digest:   a.Digest.String(),
	}, p)

	modelInfo.WithLabelValues(m.Info.Name, m.Info.Version, string(m.Info.Type), m.Info.Digest).Set(1)
	return m, nil
}

// Load fetches, parses, validates and compiles the model at location.
func Load(ctx context.Context, location string, opts ...artifact.Option) (*Model, error) {
	a, err := artifact.NewFetcher(opts...).Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch model from %s: %w", location, err)
	}

	m, err := FromArtifact(a)
	if err != nil {
		return nil, fmt.Errorf("failed to load model from %s: %w", location, err)
	}

	slog.Info("model loaded",
		"name", m.Info.Name,
		"version", m.Info.Version,
		"type", m.Info.Type,
		"outputs", m.Info.Outputs,
		"source", m.Info.Source,
		"digest", m.Info.Digest,
	)
	return m, nil
}
