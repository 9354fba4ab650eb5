// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestResultStatus_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status ResultStatus
		text   string
	}{
		{StatusFound, "found"},
		{StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := tt.status.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}

			var back ResultStatus
			if err := back.UnmarshalText([]byte(tt.text)); err != nil {
				t.Fatalf("UnmarshalText() error = %v", err)
			}
			if back != tt.status {
				t.Errorf("UnmarshalText(%q) = %v", tt.text, back)
			}
		})
	}

	if got := ResultStatus(9).String(); got != "unknown" {
		t.Errorf("String() of unknown status = %q", got)
	}

	var s ResultStatus
	if err := s.UnmarshalText([]byte("maybe")); err == nil {
		t.Error("UnmarshalText(maybe) should fail")
	}
}

func TestResult_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NotFoundResult("42"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got := string(data)
	for _, want := range []string{`"status":"not_found"`, `"customer_id":"42"`, `"categories":[]`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON %s missing %s", got, want)
		}
	}
	if strings.Contains(got, `"profile"`) {
		t.Errorf("not-found JSON should omit profile: %s", got)
	}
}

func TestNotFoundResult(t *testing.T) {
	t.Parallel()

	res := NotFoundResult("x")
	if res.Found() {
		t.Error("Found() = true")
	}
	if res.Categories == nil || len(res.Categories) != 0 {
		t.Errorf("Categories = %#v, want empty non-nil", res.Categories)
	}
	if res.Profile != nil {
		t.Error("Profile should be nil")
	}
}

func TestCustomerProfile_Helpers(t *testing.T) {
	t.Parallel()

	p := profile("1", 10, 100, 50, 5, "A")
	if got := p.Features(); !reflect.DeepEqual(got, []float64{10, 100, 50, 5}) {
		t.Errorf("Features() = %v", got)
	}
	if len(p.Features()) != len(FeatureNames) {
		t.Error("Features() length differs from FeatureNames")
	}
	if !p.HasCategory() {
		t.Error("HasCategory() = false")
	}
	if p.IsClustered() {
		t.Error("new profile should be unclustered")
	}

	p.Cluster = 0
	p.DominantCategory = ""
	if !p.IsClustered() || p.HasCategory() {
		t.Errorf("helpers after update: clustered=%v category=%v", p.IsClustered(), p.HasCategory())
	}
}

func TestClusterModel_Standardize(t *testing.T) {
	t.Parallel()

	m := &ClusterModel{
		FeatureMeans:  []float64{10, 100, 50, 5},
		FeatureScales: []float64{2, 10, 1, 1},
	}
	got := m.Standardize([]float64{14, 80, 50, 6})
	want := []float64{2, -2, 0, 1}

	for j := range want {
		if math.Abs(got[j]-want[j]) > 1e-12 {
			t.Errorf("Standardize()[%d] = %v, want %v", j, got[j], want[j])
		}
	}
}

func TestLoadStats_RowsKept(t *testing.T) {
	t.Parallel()

	s := LoadStats{RowsRead: 10, DroppedMissing: 3, DroppedBadNumber: 2}
	if got := s.RowsKept(); got != 5 {
		t.Errorf("RowsKept() = %d, want 5", got)
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	schemaErr := &SchemaError{Missing: []string{"gender", "tenure_months"}}
	if !errors.Is(schemaErr, ErrSchema) {
		t.Error("SchemaError should match ErrSchema")
	}
	if got := schemaErr.Error(); got != "missing required columns: gender, tenure_months" {
		t.Errorf("Error() = %q", got)
	}

	countErr := &InvalidClusterCountError{Requested: 7, Available: 3}
	if !errors.Is(countErr, ErrInvalidClusterCount) {
		t.Error("InvalidClusterCountError should match ErrInvalidClusterCount")
	}
	msg := countErr.Error()
	if !strings.Contains(msg, "k=7") || !strings.Contains(msg, "1 and 3") {
		t.Errorf("Error() = %q, want requested and available counts", msg)
	}
}
