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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection stages.
const (
	stageDecode     = "decode"
	stageValidation = "validation"
	stageInference  = "inference"
)

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrilens_predictions_total",
			Help: "Total number of successful predictions by disease label",
		},
		[]string{"label"},
	)

	predictionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrilens_prediction_failures_total",
			Help: "Total number of rejected or failed predictions by stage",
		},
		[]string{"stage"},
	)
)
