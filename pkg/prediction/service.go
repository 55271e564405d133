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

package prediction

import (
	"context"
	stderrors "errors"
	"log/slog"

	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/model"
)

// Service holds a loaded predictor. It is immutable after construction
// and safe for concurrent use.
type Service struct {
	predictor model.Predictor
	info      model.Info
}

// NewService creates a Service around any predictor.
func NewService(p model.Predictor, info model.Info) *Service {
	return &Service{predictor: p, info: info}
}

// FromModel creates a Service around a loaded model.
func FromModel(m *model.Model) *Service {
	return NewService(m, m.Info)
}

// Info returns the metadata of the loaded model.
func (s *Service) Info() model.Info {
	return s.info
}

// Predict runs the model on a single feature vector and normalizes the output.
func (s *Service) Predict(ctx context.Context, v features.Vector) (Result, error) {
	out, err := s.predictor.Predict(ctx, [][]float64{v.Row()})
	if err != nil {
		predictionFailures.WithLabelValues(stageInference).Inc()
		return Result{}, apperrors.Wrap(apperrors.ErrCodeInternal, "prediction failed", err)
	}

	res, err := Normalize(out)
	if err != nil {
		predictionFailures.WithLabelValues(stageInference).Inc()
		return Result{}, err
	}

	predictionsTotal.WithLabelValues(res.Label()).Inc()
	slog.Debug("prediction",
		"kind", res.Kind.String(),
		"rating", res.Rating,
		"code", res.DiseaseCode(),
	)
	return res, nil
}

// PredictObject decodes a feature object and predicts. A decoding failure
// is reported as VALIDATION_FAILED listing every offending field, and the
// model is not invoked.
func (s *Service) PredictObject(ctx context.Context, obj map[string]any) (Response, error) {
	v, err := features.Decode(obj)
	if err != nil {
		predictionFailures.WithLabelValues(stageValidation).Inc()
		var ve *features.ValidationError
		if stderrors.As(err, &ve) {
			return Response{}, apperrors.NewWithContext(apperrors.ErrCodeValidationFailed,
				"invalid features", map[string]any{"errors": ve.Fields})
		}
		return Response{}, apperrors.Wrap(apperrors.ErrCodeValidationFailed, "invalid features", err)
	}

	res, err := s.Predict(ctx, v)
	if err != nil {
		return Response{}, err
	}
	return res.Response(), nil
}
