// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package algorithms

import "math"

// CosineSimilarity computes the cosine of the angle between a and b.
// Returns 0 when either vector has zero magnitude or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))

	// Clamp rounding drift so a vector compared with itself never exceeds 1.
	if sim > 1 {
		return 1
	}
	if sim < -1 {
		return -1
	}
	return sim
}

// CosineMatrix returns the symmetric pairwise similarity matrix of the rows
// of x. The diagonal is 1 for non-zero rows and 0 for zero rows.
func CosineMatrix(x [][]float64) [][]float64 {
	n := len(x)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sim := CosineSimilarity(x[i], x[j])
			m[i][j] = sim
			m[j][i] = sim
		}
	}
	return m
}
