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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/defaults"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/features"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/serializer"
)

// DefaultURL is the predict endpoint of a locally running service.
const DefaultURL = "http://127.0.0.1:8000/predict"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// DefaultPayload returns the fixed example request: every feature zero
// except a handful of nutrition values.
func DefaultPayload() map[string]float64 {
	p := make(map[string]float64, features.Count)
	for _, name := range features.Names {
		p[name] = 0
	}
	p["calories"] = 100
	p["protein_g"] = 2
	p["fat_g"] = 1
	p["sat_fat_g"] = 1
	p["potassium_mg"] = 1
	p["calcium_mg"] = 1
	return p
}

// Options configures a probe run.
type Options struct {
	// URL of the predict endpoint. Defaults to DefaultURL.
	URL string
	// Repeat is the number of identical requests. Values below 1 mean 1.
	Repeat int
	// QPS paces repeated requests. Zero or negative means unpaced.
	QPS float64
	// Payload overrides DefaultPayload.
	Payload map[string]float64
	// Client overrides the default HTTP client.
	Client *http.Client
}

// Report is the outcome of a probe run.
type Report struct {
	URL       string        `json:"url" yaml:"url"`
	Requests  int           `json:"requests" yaml:"requests"`
	Status    int           `json:"status" yaml:"status"`
	Response  any           `json:"response" yaml:"response"`
	Identical bool          `json:"identical" yaml:"identical"`
	Distinct  int           `json:"distinct" yaml:"distinct"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Run posts the payload and returns the decoded first response along with
// a determinism summary across repeats.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Repeat < 1 {
		opts.Repeat = 1
	}
	if opts.Payload == nil {
		opts.Payload = DefaultPayload()
	}
	if opts.Client == nil {
		opts.Client = serializer.NewHTTPClient()
		opts.Client.Timeout = defaults.CLIProbeTimeout
	}

	body, err := json.Marshal(opts.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	limit := rate.Inf
	if opts.QPS > 0 {
		limit = rate.Limit(opts.QPS)
	}
	limiter := rate.NewLimiter(limit, 1)

	report := &Report{URL: opts.URL, Requests: opts.Repeat}
	seen := make(map[string]struct{})
	var first []byte

	start := time.Now()
	for i := 0; i < opts.Repeat; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("probe interrupted after %d requests: %w", i, err)
		}

		status, resp, err := post(ctx, opts.Client, opts.URL, body)
		if err != nil {
			return nil, err
		}

		slog.Debug("probe response", "attempt", i+1, "status", status, "bytes", len(resp))

		if i == 0 {
			report.Status = status
			first = resp
		}
		seen[string(resp)] = struct{}{}
	}
	report.Duration = time.Since(start)

	if err := json.Unmarshal(first, &report.Response); err != nil {
		return nil, fmt.Errorf("response is not JSON (status %d): %w", report.Status, err)
	}
	report.Distinct = len(seen)
	report.Identical = report.Distinct == 1

	return report, nil
}

func post(ctx context.Context, client *http.Client, url string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", serializer.HttpReaderUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, bytes.TrimSpace(data), nil
}
