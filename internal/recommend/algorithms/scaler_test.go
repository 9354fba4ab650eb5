// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package algorithms

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestFitStandardScaler(t *testing.T) {
	x := [][]float64{
		{1, 10, 7},
		{3, 20, 7},
		{5, 30, 7},
	}

	s, err := FitStandardScaler(x)
	if err != nil {
		t.Fatalf("FitStandardScaler() error = %v", err)
	}

	wantMean := []float64{3, 20, 7}
	wantScale := []float64{math.Sqrt(8.0 / 3), math.Sqrt(200.0 / 3), 1}
	for j := range wantMean {
		if math.Abs(s.Mean[j]-wantMean[j]) > epsilon {
			t.Errorf("Mean[%d] = %v, want %v", j, s.Mean[j], wantMean[j])
		}
		if math.Abs(s.Scale[j]-wantScale[j]) > epsilon {
			t.Errorf("Scale[%d] = %v, want %v", j, s.Scale[j], wantScale[j])
		}
	}
}

func TestStandardScaler_Transform(t *testing.T) {
	x := [][]float64{
		{1, 10, 7},
		{3, 20, 7},
		{5, 30, 7},
	}

	s, err := FitStandardScaler(x)
	if err != nil {
		t.Fatalf("FitStandardScaler() error = %v", err)
	}
	z := s.Transform(x)

	for j := 0; j < 3; j++ {
		var mean, variance float64
		for i := range z {
			mean += z[i][j]
		}
		mean /= 3
		for i := range z {
			variance += (z[i][j] - mean) * (z[i][j] - mean)
		}
		variance /= 3

		if math.Abs(mean) > epsilon {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		want := 1.0
		if j == 2 {
			want = 0 // constant column stays a zero-centered constant
		}
		if math.Abs(variance-want) > epsilon {
			t.Errorf("column %d variance = %v, want %v", j, variance, want)
		}
	}

	// The input must not be modified.
	if x[0][0] != 1 || x[2][1] != 30 {
		t.Error("Transform() modified its input")
	}
}

func TestFitStandardScaler_Errors(t *testing.T) {
	tests := []struct {
		name      string
		x         [][]float64
		wantEmpty bool
	}{
		{name: "no rows", x: nil, wantEmpty: true},
		{name: "no columns", x: [][]float64{{}}, wantEmpty: true},
		{name: "ragged", x: [][]float64{{1, 2}, {3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitStandardScaler(tt.x)
			if err == nil {
				t.Fatal("FitStandardScaler() error = nil, want error")
			}
			if got := errors.Is(err, ErrEmptyMatrix); got != tt.wantEmpty {
				t.Errorf("errors.Is(err, ErrEmptyMatrix) = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}
