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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutrilens_model_inference_duration_seconds",
			Help:    "Time spent in the predictor",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
		},
		[]string{"type"},
	)

	inferenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrilens_model_inference_errors_total",
			Help: "Total number of predictor failures",
		},
		[]string{"type"},
	)

	modelInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nutrilens_model_info",
			Help: "Loaded model metadata, always 1",
		},
		[]string{"name", "version", "type", "digest"},
	)
)
