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
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/serializer"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/server"
)

// HandlePredict serves POST /predict.
func (s *Service) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if !server.AllowMethod(w, r, http.MethodPost) {
		return
	}
	defer func() {
		if r.Body != nil {
			r.Body.Close()
		}
	}()

	obj, err := decodeObject(r.Body)
	if err != nil {
		predictionFailures.WithLabelValues(stageDecode).Inc()
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeInvalidRequest,
				"Request body too large", false, map[string]any{"limit": tooLarge.Limit})
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	resp, err := s.PredictObject(r.Context(), obj)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Prediction failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleModel serves GET /model.
func (s *Service) HandleModel(w http.ResponseWriter, r *http.Request) {
	if !server.AllowMethod(w, r, http.MethodGet) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.info)
}

var errNotObject = stderrors.New("request body must be a JSON object")

// decodeObject reads exactly one JSON object. Numbers are kept as
// json.Number so large or precise values reach coercion untouched.
func decodeObject(body io.Reader) (map[string]any, error) {
	if body == nil {
		return nil, errNotObject
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errNotObject
		}
		return nil, err
	}

	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return nil, stderrors.New("unexpected data after JSON object")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}
