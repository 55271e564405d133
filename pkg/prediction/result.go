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
	"fmt"
	"math"

	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
)

// Kind tags the shape of a Result.
type Kind int

const (
	// KindRatingOnly carries a rating and no disease code.
	KindRatingOnly Kind = iota
	// KindRatingWithDiseaseCode carries a rating and a disease code.
	KindRatingWithDiseaseCode
)

func (k Kind) String() string {
	switch k {
	case KindRatingOnly:
		return "RatingOnly"
	case KindRatingWithDiseaseCode:
		return "RatingWithDiseaseCode"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const (
	// NoDiseaseCode is the code reported by RatingOnly results.
	NoDiseaseCode = -1

	// NoneLabel is the label of any code missing from the disease table.
	NoneLabel = "None"
)

// Code 4 is intentionally unmapped.
var diseaseLabels = map[int]string{
	0: "Cardiac issue",
	1: "Diabetes",
	2: "High cholesterol",
	3: "Hypertension",
	5: "Obesity",
}

// DiseaseLabel returns the label for code, or NoneLabel when unmapped.
func DiseaseLabel(code int) string {
	if label, ok := diseaseLabels[code]; ok {
		return label
	}
	return NoneLabel
}

// Result is the normalized output of one prediction.
type Result struct {
	Kind   Kind
	Rating float64
	code   int
}

// RatingOnly builds a result without a disease code.
func RatingOnly(rating float64) Result {
	return Result{Kind: KindRatingOnly, Rating: rating, code: NoDiseaseCode}
}

// RatingWithDiseaseCode builds a result carrying a disease code.
func RatingWithDiseaseCode(rating float64, code int) Result {
	return Result{Kind: KindRatingWithDiseaseCode, Rating: rating, code: code}
}

// DiseaseCode returns the disease code, or NoDiseaseCode for RatingOnly.
func (r Result) DiseaseCode() int {
	if r.Kind == KindRatingOnly {
		return NoDiseaseCode
	}
	return r.code
}

// Label returns the disease label for the result.
func (r Result) Label() string {
	return DiseaseLabel(r.DiseaseCode())
}

// Response renders the result as the public response body.
func (r Result) Response() Response {
	return Response{
		Rating:           r.Rating,
		PredictedDisease: r.Label(),
	}
}

// Response is the body returned by POST /predict.
type Response struct {
	Rating           float64 `json:"rating" yaml:"rating"`
	PredictedDisease string  `json:"predicted_disease" yaml:"predicted_disease"`
}

// Normalize converts raw predictor output into a Result using the first
// sample row only.
func Normalize(out [][]float64) (Result, error) {
	if len(out) == 0 {
		return Result{}, apperrors.New(apperrors.ErrCodeInternal, "model returned no rows")
	}

	row := out[0]
	if len(row) == 0 {
		return Result{}, apperrors.New(apperrors.ErrCodeInternal, "model returned an empty row")
	}

	rating := row[0]
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return Result{}, apperrors.NewWithContext(apperrors.ErrCodeInternal, "model returned a non-finite rating",
			map[string]any{"rating": fmt.Sprint(rating)})
	}

	if len(row) == 1 {
		return RatingOnly(rating), nil
	}

	code := row[1]
	if math.IsNaN(code) || math.IsInf(code, 0) {
		return Result{}, apperrors.NewWithContext(apperrors.ErrCodeInternal, "model returned a non-finite disease code",
			map[string]any{"code": fmt.Sprint(code)})
	}

	return RatingWithDiseaseCode(rating, truncCode(code)), nil
}

// truncCode truncates toward zero, saturating at the int32 range.
func truncCode(f float64) int {
	t := math.Trunc(f)
	switch {
	case t > math.MaxInt32:
		return math.MaxInt32
	case t < math.MinInt32:
		return math.MinInt32
	default:
		return int(t)
	}
}
