// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvalidK is returned when k is outside [1, rows].
var ErrInvalidK = errors.New("invalid cluster count")

// KMeansConfig contains k-means hyperparameters.
type KMeansConfig struct {
	// K is the number of clusters.
	K int

	// MaxIterations caps Lloyd iterations per restart.
	// Default: 300
	MaxIterations int

	// NInit is the number of k-means++ restarts; the lowest inertia wins.
	// Default: 10
	NInit int

	// Tolerance is the convergence threshold on total squared centroid
	// shift, relative to the mean column variance of the input.
	// Default: 1e-4
	Tolerance float64

	// Seed for the random number generator.
	// Default: 42
	Seed int64
}

// DefaultKMeansConfig returns default k-means configuration.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		K:             5,
		MaxIterations: 300,
		NInit:         10,
		Tolerance:     1e-4,
		Seed:          42,
	}
}

// KMeansResult is the outcome of the best restart.
type KMeansResult struct {
	// Labels holds one cluster label in [0, K) per input row.
	Labels []int

	// Centroids holds K cluster centers in input space, indexed by label.
	Centroids [][]float64

	// Inertia is the sum of squared distances of rows to their centroid.
	Inertia float64

	// Iterations is the number of Lloyd iterations the best restart used.
	Iterations int
}

// Sizes returns the number of rows assigned to each label.
func (r *KMeansResult) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, l := range r.Labels {
		sizes[l]++
	}
	return sizes
}

// KMeans partitions rows into K clusters.
type KMeans struct {
	config KMeansConfig
}

// NewKMeans creates a k-means clusterer. Zero-valued settings take defaults.
func NewKMeans(cfg KMeansConfig) *KMeans {
	defaults := DefaultKMeansConfig()
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaults.MaxIterations
	}
	if cfg.NInit <= 0 {
		cfg.NInit = defaults.NInit
	}
	if cfg.Tolerance < 0 {
		cfg.Tolerance = defaults.Tolerance
	}
	return &KMeans{config: cfg}
}

// Config returns the effective configuration.
func (km *KMeans) Config() KMeansConfig {
	return km.config
}

// Fit clusters the rows of x. The input is not modified.
func (km *KMeans) Fit(ctx context.Context, x [][]float64) (*KMeansResult, error) {
	dims, err := dimensions(x)
	if err != nil {
		return nil, err
	}
	k := km.config.K
	if k < 1 || k > len(x) {
		return nil, fmt.Errorf("%w: k=%d with %d rows", ErrInvalidK, k, len(x))
	}

	tol := km.config.Tolerance * meanVariance(x, dims)
	rng := rand.New(rand.NewSource(km.config.Seed)) //nolint:gosec // reproducibility, not security

	var best *KMeansResult
	for run := 0; run < km.config.NInit; run++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		centroids := seedPlusPlus(x, k, rng)
		res, err := km.lloyd(ctx, x, centroids, tol)
		if err != nil {
			return nil, err
		}
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}

	relabelByFirstAppearance(best)
	return best, nil
}

// lloyd runs assignment/update iterations from the given centroids.
func (km *KMeans) lloyd(ctx context.Context, x, centroids [][]float64, tol float64) (*KMeansResult, error) {
	labels := make([]int, len(x))
	for i := range labels {
		labels[i] = -1
	}

	iterations := 0
	converged := false
	for iter := 1; iter <= km.config.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations = iter

		if !assign(x, centroids, labels) {
			converged = true
			break
		}
		if shift := update(x, labels, centroids); shift <= tol {
			break
		}
	}
	if !converged {
		// Labels must describe the final centroids.
		assign(x, centroids, labels)
	}

	return &KMeansResult{
		Labels:     labels,
		Centroids:  centroids,
		Inertia:    inertia(x, labels, centroids),
		Iterations: iterations,
	}, nil
}

// seedPlusPlus picks k initial centroids with the k-means++ rule: each new
// center is drawn with probability proportional to its squared distance from
// the nearest center already chosen.
func seedPlusPlus(x [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(x)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneRow(x[rng.Intn(n)]))

	closest := make([]float64, n)
	for i := range x {
		closest[i] = squaredDistance(x[i], centroids[0])
	}

	for len(centroids) < k {
		var total float64
		for _, d := range closest {
			total += d
		}

		next := 0
		if total == 0 {
			// All remaining points coincide with a center.
			next = rng.Intn(n)
		} else {
			target := rng.Float64() * total
			var cum float64
			for i, d := range closest {
				cum += d
				if cum > target {
					next = i
					break
				}
				next = i
			}
		}

		c := cloneRow(x[next])
		centroids = append(centroids, c)
		for i := range x {
			if d := squaredDistance(x[i], c); d < closest[i] {
				closest[i] = d
			}
		}
	}

	return centroids
}

// assign moves every row to its nearest centroid, lowest label on ties.
// Returns whether any label changed.
func assign(x, centroids [][]float64, labels []int) bool {
	changed := false
	for i, row := range x {
		bestLabel := 0
		bestDist := math.Inf(1)
		for c, centroid := range centroids {
			if d := squaredDistance(row, centroid); d < bestDist {
				bestDist = d
				bestLabel = c
			}
		}
		if labels[i] != bestLabel {
			labels[i] = bestLabel
			changed = true
		}
	}
	return changed
}

// update recomputes centroids as member means and returns the total squared
// centroid shift. An empty cluster is re-seeded with the row farthest from
// its current centroid.
func update(x [][]float64, labels []int, centroids [][]float64) float64 {
	k := len(centroids)
	dims := len(x[0])

	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dims)
	}
	counts := make([]int, k)
	for i, row := range x {
		c := labels[i]
		counts[c]++
		for j, v := range row {
			sums[c][j] += v
		}
	}

	old := append([][]float64(nil), centroids...)
	var shift float64
	taken := make(map[int]bool)
	for c := 0; c < k; c++ {
		var next []float64
		if counts[c] > 0 {
			next = sums[c]
			for j := range next {
				next[j] /= float64(counts[c])
			}
		} else {
			far := farthestRow(x, labels, old, taken)
			taken[far] = true
			next = cloneRow(x[far])
		}
		shift += squaredDistance(centroids[c], next)
		centroids[c] = next
	}
	return shift
}

// farthestRow returns the index of the row farthest from its assigned
// centroid, skipping rows already used to re-seed.
func farthestRow(x [][]float64, labels []int, centroids [][]float64, taken map[int]bool) int {
	far, farDist := 0, -1.0
	for i, row := range x {
		if taken[i] {
			continue
		}
		if d := squaredDistance(row, centroids[labels[i]]); d > farDist {
			far, farDist = i, d
		}
	}
	return far
}

// relabelByFirstAppearance renumbers clusters so that labels appear in
// ascending order when reading rows top to bottom. Unused labels keep the
// highest numbers.
func relabelByFirstAppearance(r *KMeansResult) {
	k := len(r.Centroids)
	mapping := make([]int, k)
	for c := range mapping {
		mapping[c] = -1
	}

	next := 0
	for _, l := range r.Labels {
		if mapping[l] == -1 {
			mapping[l] = next
			next++
		}
	}
	for c := range mapping {
		if mapping[c] == -1 {
			mapping[c] = next
			next++
		}
	}

	centroids := make([][]float64, k)
	for old, nw := range mapping {
		centroids[nw] = r.Centroids[old]
	}
	for i, l := range r.Labels {
		r.Labels[i] = mapping[l]
	}
	r.Centroids = centroids
}

// inertia returns the within-cluster sum of squared distances.
func inertia(x [][]float64, labels []int, centroids [][]float64) float64 {
	var total float64
	for i, row := range x {
		total += squaredDistance(row, centroids[labels[i]])
	}
	return total
}

// meanVariance returns the mean of the per-column population variances.
func meanVariance(x [][]float64, dims int) float64 {
	n := float64(len(x))
	var total float64
	for j := 0; j < dims; j++ {
		var mean float64
		for _, row := range x {
			mean += row[j]
		}
		mean /= n
		var v float64
		for _, row := range x {
			d := row[j] - mean
			v += d * d
		}
		total += v / n
	}
	return total / float64(dims)
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
