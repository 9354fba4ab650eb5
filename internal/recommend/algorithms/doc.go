// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

// Package algorithms implements the numeric kernels behind customer
// segmentation and peer ranking.
//
// # Components
//
//   - StandardScaler: per-feature zero mean / unit variance scaling
//   - KMeans: seeded k-means++ with restarts (Lloyd iterations)
//   - CosineSimilarity / CosineMatrix: angle-based vector similarity
//
// All kernels operate on dense row-major [][]float64 matrices and never
// modify their inputs.
//
// # Determinism
//
// KMeans draws every random number from a single rand.Rand seeded from
// KMeansConfig.Seed, so identical input in identical order always produces
// identical labels. Labels are renumbered in order of first appearance.
//
// # Thread Safety
//
// A fitted StandardScaler is immutable and safe for concurrent use.
// KMeans holds no state between Fit calls.
package algorithms
