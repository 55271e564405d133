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

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
)

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), contextKeyRequestID, "550e8400-e29b-41d4-a716-446655440000")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
		"bad input", false, map[string]any{"field": "bmi"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Code != "INVALID_REQUEST" {
		t.Errorf("expected code INVALID_REQUEST, got %s", resp.Code)
	}
	if resp.Message != "bad input" {
		t.Errorf("expected message 'bad input', got %s", resp.Message)
	}
	if resp.RequestID != "550e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("expected request ID from context, got %s", resp.RequestID)
	}
	if resp.Details["field"] != "bmi" {
		t.Errorf("expected details.field bmi, got %v", resp.Details["field"])
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestWriteError_GeneratesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusInternalServerError, apperrors.ErrCodeInternal, "boom", true, nil)

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("expected generated request ID")
	}
	if resp.Details != nil {
		t.Errorf("expected no details, got %v", resp.Details)
	}
}

func TestWriteErrorFromErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
		retryable  bool
	}{
		{
			name:       "structured validation error",
			err:        apperrors.New(apperrors.ErrCodeValidationFailed, "invalid features"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION_FAILED",
			wantMsg:    "invalid features",
		},
		{
			name:       "structured not found",
			err:        apperrors.Wrap(apperrors.ErrCodeNotFound, "model not found", fmt.Errorf("no such file")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "model not found",
		},
		{
			name:       "wrapped structured error",
			err:        fmt.Errorf("outer: %w", apperrors.New(apperrors.ErrCodeUnavailable, "cluster unreachable")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "SERVICE_UNAVAILABLE",
			wantMsg:    "cluster unreachable",
			retryable:  true,
		},
		{
			name:       "plain error",
			err:        fmt.Errorf("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantMsg:    "fallback",
			retryable:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()

			WriteErrorFromErr(rec, req, tt.err, "fallback", nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
			if resp.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, resp.Message)
			}
			if resp.Retryable != tt.retryable {
				t.Errorf("expected retryable %v, got %v", tt.retryable, resp.Retryable)
			}
		})
	}
}

func TestWriteErrorFromErr_ReportsCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	err := apperrors.Wrap(apperrors.ErrCodeInternal, "prediction failed", fmt.Errorf("empty row"))
	WriteErrorFromErr(rec, req, err, "fallback", map[string]any{"model": "food-rater"})

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Details["error"] != "empty row" {
		t.Errorf("expected details.error 'empty row', got %v", resp.Details["error"])
	}
	if resp.Details["model"] != "food-rater" {
		t.Errorf("expected details.model food-rater, got %v", resp.Details["model"])
	}
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code apperrors.ErrorCode
		want int
	}{
		{apperrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{apperrors.ErrCodeValidationFailed, http.StatusUnprocessableEntity},
		{apperrors.ErrCodeNotFound, http.StatusNotFound},
		{apperrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{apperrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
		{apperrors.ErrorCode("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Errorf("HTTPStatusFromCode(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}
