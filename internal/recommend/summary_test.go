// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"errors"
	"reflect"
	"testing"
)

func TestSummarize(t *testing.T) {
	profiles := withLabels([]CustomerProfile{
		profile("1", 10, 100.111, 50, 5, "A"),
		profile("2", 11, 105.222, 52, 6, "A"),
		profile("3", 50, 10, 500, 1, "B"),
	}, 0, 0, 1)

	summary, err := Summarize(profiles)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if len(summary) != 2 {
		t.Fatalf("len(summary) = %d, want 2", len(summary))
	}

	want0 := ClusterMetrics{
		Cluster:          0,
		Customers:        2,
		MeanTenureMonths: 10.5,
		MeanOnlineSpend:  102.67,
		MeanOfflineSpend: 51,
		MeanDiscountPct:  5.5,
	}
	if summary[0] != want0 {
		t.Errorf("summary[0] = %+v, want %+v", summary[0], want0)
	}

	want1 := ClusterMetrics{Cluster: 1, Customers: 1, MeanTenureMonths: 50, MeanOnlineSpend: 10, MeanOfflineSpend: 500, MeanDiscountPct: 1}
	if summary[1] != want1 {
		t.Errorf("summary[1] = %+v, want %+v", summary[1], want1)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	profiles := withLabels(scenarioProfiles(), 0, 0, 1)

	first, err := Summarize(profiles)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	second, err := Summarize(profiles)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Summarize() calls differ")
	}
}

func TestSummarize_NotClustered(t *testing.T) {
	if _, err := Summarize(scenarioProfiles()); !errors.Is(err, ErrNotClustered) {
		t.Errorf("Summarize() error = %v, want ErrNotClustered", err)
	}
}

func TestSortedMetrics(t *testing.T) {
	summary := map[int]ClusterMetrics{
		2: {Cluster: 2},
		0: {Cluster: 0},
		1: {Cluster: 1},
	}

	got := SortedMetrics(summary)
	for i, m := range got {
		if m.Cluster != i {
			t.Errorf("SortedMetrics()[%d].Cluster = %d", i, m.Cluster)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{-1.236, -1.24},
		{100, 100},
		{0.125, 0.12},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
