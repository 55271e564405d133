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

package features

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Count is the number of features every model consumes.
const Count = 28

// Names is the canonical feature order. Model rows are always built in
// this order.
var Names = [Count]string{
	"calories",
	"protein_g",
	"fat_g",
	"sat_fat_g",
	"trans_fat_g",
	"carbs_g",
	"fiber_g",
	"sugar_g",
	"sodium_mg",
	"potassium_mg",
	"calcium_mg",
	"has_processed_meat",
	"has_red_meat",
	"has_trans_fats",
	"has_artificial_colors",
	"has_preservatives",
	"preservative_count",
	"is_male_flag",
	"carcinogen_flag",
	"habitat_region",
	"age_group",
	"near_equator",
	"urbanicity",
	"bp_flag",
	"pregnancy_flag",
	"diabetes_flag",
	"cardiac_flag",
	"bmi_class",
}

var index = func() map[string]int {
	m := make(map[string]int, Count)
	for i, n := range Names {
		m[n] = i
	}
	return m
}()

// Index returns the canonical position of name.
func Index(name string) (int, bool) {
	i, ok := index[name]
	return i, ok
}

// Vector holds one value per feature in canonical order.
type Vector [Count]float64

// Row returns the vector as a model input row.
func (v Vector) Row() []float64 {
	row := make([]float64, Count)
	copy(row, v[:])
	return row
}

// Get returns the value of the named feature.
func (v Vector) Get(name string) (float64, bool) {
	i, ok := index[name]
	if !ok {
		return 0, false
	}
	return v[i], true
}

// Map returns the vector keyed by feature name.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, Count)
	for i, n := range Names {
		m[n] = v[i]
	}
	return m
}

var titler = cases.Title(language.English)

var unitSuffixes = []struct{ suffix, label string }{
	{"_mg", " (mg)"},
	{"_g", " (g)"},
	{"_flag", ""},
}

// Title returns a human readable label for a feature name,
// e.g. "sat_fat_g" becomes "Sat Fat (g)".
func Title(name string) string {
	suffix := ""
	for _, u := range unitSuffixes {
		if strings.HasSuffix(name, u.suffix) {
			name = strings.TrimSuffix(name, u.suffix)
			suffix = u.label
			break
		}
	}
	return titler.String(strings.ReplaceAll(name, "_", " ")) + suffix
}

// Descriptor describes one feature for listing.
type Descriptor struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
}

// Describe lists every feature in canonical order.
func Describe() []Descriptor {
	out := make([]Descriptor, 0, Count)
	for i, n := range Names {
		out = append(out, Descriptor{Index: i, Name: n, Title: Title(n)})
	}
	return out
}
