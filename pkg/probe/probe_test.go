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

package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
)

func TestDefaultPayload(t *testing.T) {
	p := DefaultPayload()
	require.Len(t, p, features.Count)

	for _, name := range features.Names {
		_, ok := p[name]
		assert.True(t, ok, "missing %s", name)
	}

	assert.Equal(t, float64(100), p["calories"])
	assert.Equal(t, float64(2), p["protein_g"])
	assert.Equal(t, float64(1), p["fat_g"])
	assert.Equal(t, float64(1), p["sat_fat_g"])
	assert.Equal(t, float64(1), p["potassium_mg"])
	assert.Equal(t, float64(1), p["calcium_mg"])
	assert.Equal(t, float64(0), p["bmi_class"])

	// fresh copy each call
	p["calories"] = 1
	assert.Equal(t, float64(100), DefaultPayload()["calories"])
}

func TestRun(t *testing.T) {
	received := make(chan map[string]float64, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var got map[string]float64
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		received <- got
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"rating": 3.8, "predicted_disease": "None"}`)
	}))
	defer srv.Close()

	report, err := Run(context.Background(), Options{URL: srv.URL})
	require.NoError(t, err)

	assert.Equal(t, DefaultPayload(), <-received)
	assert.Equal(t, http.StatusOK, report.Status)
	assert.Equal(t, 1, report.Requests)
	assert.True(t, report.Identical)
	assert.Equal(t, map[string]any{"rating": 3.8, "predicted_disease": "None"}, report.Response)
}

func TestRunRepeatDetectsDifferences(t *testing.T) {
	var n atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := n.Add(1)
		fmt.Fprintf(w, `{"rating": %d}`, i%2)
	}))
	defer srv.Close()

	report, err := Run(context.Background(), Options{URL: srv.URL, Repeat: 4, QPS: 1000})
	require.NoError(t, err)

	assert.Equal(t, int32(4), n.Load())
	assert.Equal(t, 4, report.Requests)
	assert.False(t, report.Identical)
	assert.Equal(t, 2, report.Distinct)
}

func TestRunRepeatIdentical(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rating": 1, "predicted_disease": "Diabetes"}`)
	}))
	defer srv.Close()

	report, err := Run(context.Background(), Options{URL: srv.URL, Repeat: 3})
	require.NoError(t, err)
	assert.True(t, report.Identical)
	assert.Equal(t, 1, report.Distinct)
}

func TestRunReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"code": "VALIDATION_FAILED"}`)
	}))
	defer srv.Close()

	report, err := Run(context.Background(), Options{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, report.Status)
}

func TestRunFailures(t *testing.T) {
	t.Run("non json response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "plain text")
		}))
		defer srv.Close()

		_, err := Run(context.Background(), Options{URL: srv.URL})
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := Run(context.Background(), Options{URL: url})
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, Options{URL: "http://127.0.0.1:1/predict"})
		assert.Error(t, err)
	})
}
