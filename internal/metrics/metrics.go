// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

// Package metrics holds the Prometheus collectors for dataset loading,
// clustering and recommendation queries.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons used with RowsDropped.
const (
	DropMissingField = "missing_field"
	DropBadNumber    = "bad_number"
)

// Recommendation outcomes used with RecommendRequests.
const (
	OutcomeFound    = "found"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// Loading
	RowsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shopsegment_rows_loaded_total",
			Help: "Total number of transaction rows read from the data source",
		},
	)

	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsegment_rows_dropped_total",
			Help: "Total number of transaction rows dropped during cleaning",
		},
		[]string{"reason"}, // "missing_field", "bad_number"
	)

	Profiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopsegment_profiles",
			Help: "Number of customer profiles in the current session",
		},
	)

	// Clustering
	ClusterDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopsegment_cluster_duration_seconds",
			Help:    "Duration of k-means clustering runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ClusterIterations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopsegment_cluster_iterations",
			Help: "Iterations used by the winning k-means restart",
		},
	)

	ClusterInertia = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopsegment_cluster_inertia",
			Help: "Within-cluster sum of squared distances of the current model",
		},
	)

	ClusterSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopsegment_cluster_size",
			Help: "Number of profiles assigned to each cluster",
		},
		[]string{"cluster"},
	)

	// Recommendations
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsegment_recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "found", "empty", "not_found", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopsegment_recommend_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

// RecordLoad records the outcome of reading and cleaning a dataset.
func RecordLoad(rowsRead, missingField, badNumber, profiles int) {
	RowsLoaded.Add(float64(rowsRead))
	RowsDropped.WithLabelValues(DropMissingField).Add(float64(missingField))
	RowsDropped.WithLabelValues(DropBadNumber).Add(float64(badNumber))
	Profiles.Set(float64(profiles))
}

// RecordCluster records a completed clustering run.
func RecordCluster(duration time.Duration, iterations int, inertia float64, sizes []int) {
	ClusterDuration.Observe(duration.Seconds())
	ClusterIterations.Set(float64(iterations))
	ClusterInertia.Set(inertia)
	ClusterSize.Reset()
	for label, n := range sizes {
		ClusterSize.WithLabelValues(strconv.Itoa(label)).Set(float64(n))
	}
}

// RecordRecommend records a recommendation query.
func RecordRecommend(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// WriteTextfile writes every metric in the default registry to path in the
// Prometheus text format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
