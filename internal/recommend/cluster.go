// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsegment/internal/metrics"
	"github.com/tomtom215/shopsegment/internal/recommend/algorithms"
)

// featureMatrix returns the feature vectors of profiles in table order.
func featureMatrix(profiles []CustomerProfile) [][]float64 {
	x := make([][]float64, len(profiles))
	for i := range profiles {
		x[i] = profiles[i].Features()
	}
	return x
}

// Cluster standardizes the profile features and partitions the profiles into
// cfg.K segments. It returns a labeled copy of profiles and the fitted model;
// the input slice is never modified, including on error.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Cluster(ctx context.Context, profiles []CustomerProfile, cfg ClusterConfig, logger zerolog.Logger) ([]CustomerProfile, *ClusterModel, error) {
	if cfg.K < 1 || cfg.K > len(profiles) {
		return nil, nil, &InvalidClusterCountError{Requested: cfg.K, Available: len(profiles)}
	}

	start := time.Now()
	x := featureMatrix(profiles)

	scaler, err := algorithms.FitStandardScaler(x)
	if err != nil {
		return nil, nil, fmt.Errorf("standardize features: %w", err)
	}

	km := algorithms.NewKMeans(algorithms.KMeansConfig{
		K:             cfg.K,
		MaxIterations: cfg.MaxIterations,
		NInit:         cfg.NInit,
		Tolerance:     cfg.Tolerance,
		Seed:          cfg.Seed,
	})
	res, err := km.Fit(ctx, scaler.Transform(x))
	if err != nil {
		return nil, nil, fmt.Errorf("k-means: %w", err)
	}

	labeled := make([]CustomerProfile, len(profiles))
	copy(labeled, profiles)
	for i := range labeled {
		labeled[i].Cluster = res.Labels[i]
	}

	model := &ClusterModel{
		K:             cfg.K,
		Seed:          cfg.Seed,
		FeatureMeans:  scaler.Mean,
		FeatureScales: scaler.Scale,
		Centroids:     res.Centroids,
		Sizes:         res.Sizes(),
		Inertia:       res.Inertia,
		Iterations:    res.Iterations,
		FittedAt:      time.Now(),
	}

	duration := time.Since(start)
	metrics.RecordCluster(duration, model.Iterations, model.Inertia, model.Sizes)
	logger.Info().
		Int("k", model.K).
		Int("profiles", len(labeled)).
		Ints("sizes", model.Sizes).
		Float64("inertia", model.Inertia).
		Int("iterations", model.Iterations).
		Dur("duration", duration).
		Msg("Clustered customer profiles")

	return labeled, model, nil
}
