// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package algorithms

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyMatrix is returned when a kernel receives no rows.
var ErrEmptyMatrix = errors.New("empty matrix")

// StandardScaler rescales each column to zero mean and unit population
// variance. A column with zero variance keeps Scale 1 so it transforms to a
// zero-centered constant.
type StandardScaler struct {
	// Mean is the per-column mean of the fitted data.
	Mean []float64 `json:"mean"`

	// Scale is the per-column population standard deviation, or 1 where
	// the deviation is zero.
	Scale []float64 `json:"scale"`
}

// FitStandardScaler computes column means and deviations of x.
func FitStandardScaler(x [][]float64) (*StandardScaler, error) {
	dims, err := dimensions(x)
	if err != nil {
		return nil, err
	}

	n := float64(len(x))
	mean := make([]float64, dims)
	for _, row := range x {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}

	scale := make([]float64, dims)
	for _, row := range x {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	return &StandardScaler{Mean: mean, Scale: scale}, nil
}

// Transform returns a standardized copy of x.
func (s *StandardScaler) Transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.TransformRow(row)
	}
	return out
}

// TransformRow returns a standardized copy of a single row.
func (s *StandardScaler) TransformRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// dimensions returns the shared row width of x, rejecting empty and ragged
// matrices.
func dimensions(x [][]float64) (int, error) {
	if len(x) == 0 {
		return 0, ErrEmptyMatrix
	}
	dims := len(x[0])
	if dims == 0 {
		return 0, fmt.Errorf("matrix has zero columns: %w", ErrEmptyMatrix)
	}
	for i, row := range x {
		if len(row) != dims {
			return 0, fmt.Errorf("row %d has %d columns, want %d", i, len(row), dims)
		}
	}
	return dims, nil
}
