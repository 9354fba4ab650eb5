// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import "fmt"

// Config contains all configuration for segmentation and recommendation.
type Config struct {
	// Cluster contains k-means parameters.
	Cluster ClusterConfig `json:"cluster"`

	// Recommend contains recommendation parameters.
	Recommend RecommendConfig `json:"recommend"`
}

// ClusterConfig contains k-means parameters.
type ClusterConfig struct {
	// K is the number of clusters.
	// Default: 5.
	K int `json:"k"`

	// MaxIterations caps iterations per restart.
	// Default: 300.
	MaxIterations int `json:"max_iterations"`

	// NInit is the number of seeded restarts.
	// Default: 10.
	NInit int `json:"n_init"`

	// Tolerance is the relative convergence threshold.
	// Default: 1e-4.
	Tolerance float64 `json:"tolerance"`

	// Seed is the random seed for deterministic clustering.
	// Default: 42.
	Seed int64 `json:"seed"`
}

// RecommendConfig contains recommendation parameters.
type RecommendConfig struct {
	// TopN is the default number of categories to return.
	// Default: 3.
	TopN int `json:"top_n"`

	// NeighborWindow is how many most-similar peers vote.
	// Default: 5.
	NeighborWindow int `json:"neighbor_window"`

	// StandardizeSimilarity ranks peers on standardized features instead
	// of raw values.
	// Default: false.
	StandardizeSimilarity bool `json:"standardize_similarity"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cluster: ClusterConfig{
			K:             5,
			MaxIterations: 300,
			NInit:         10,
			Tolerance:     1e-4,
			Seed:          42,
		},
		Recommend: RecommendConfig{
			TopN:                  3,
			NeighborWindow:        5,
			StandardizeSimilarity: false,
		},
	}
}

// Validate checks the configuration for errors. The cluster count is not
// checked against the data here; Cluster does that.
func (c *Config) Validate() error {
	if c.Cluster.K < 1 {
		return fmt.Errorf("cluster.k must be positive, got %d", c.Cluster.K)
	}
	if c.Cluster.MaxIterations < 1 {
		return fmt.Errorf("cluster.max_iterations must be positive, got %d", c.Cluster.MaxIterations)
	}
	if c.Cluster.NInit < 1 {
		return fmt.Errorf("cluster.n_init must be positive, got %d", c.Cluster.NInit)
	}
	if c.Cluster.Tolerance < 0 {
		return fmt.Errorf("cluster.tolerance must be non-negative, got %f", c.Cluster.Tolerance)
	}
	if c.Recommend.TopN < 1 {
		return fmt.Errorf("recommend.top_n must be positive, got %d", c.Recommend.TopN)
	}
	if c.Recommend.NeighborWindow < 1 {
		return fmt.Errorf("recommend.neighbor_window must be positive, got %d", c.Recommend.NeighborWindow)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
