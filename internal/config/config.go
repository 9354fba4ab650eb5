// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

// Package config loads Shopsegment configuration from built-in defaults,
// an optional YAML file and environment variables, in that order of
// precedence (env wins).
package config

// Config is the complete application configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Cluster   ClusterConfig   `koanf:"cluster"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// DataConfig locates the transaction dataset.
type DataConfig struct {
	// Path is a dataset file or a directory to search for the first *.csv file.
	// Files ending in .db, .sqlite or .sqlite3 are read as SQLite databases,
	// .duckdb as DuckDB databases and .parquet as Parquet files.
	// Default: data
	Path string `koanf:"path" validate:"required"`

	// Table is the database table holding transaction rows.
	// Default: transactions
	Table string `koanf:"table" validate:"required"`

	// Delimiter is the field separator for delimited text files. Empty
	// selects tab for .tsv files and comma otherwise.
	// Default: ""
	Delimiter string `koanf:"delimiter" validate:"omitempty,single_rune"`
}

// DelimiterRune returns the configured delimiter, or 0 when unset.
func (d *DataConfig) DelimiterRune() rune {
	for _, r := range d.Delimiter {
		return r
	}
	return 0
}

// ClusterConfig controls k-means segmentation.
type ClusterConfig struct {
	// K is the number of customer segments.
	// Default: 5
	K int `koanf:"k" validate:"min=1"`

	// MaxIterations caps Lloyd iterations per restart.
	// Default: 300
	MaxIterations int `koanf:"max_iterations" validate:"min=1"`

	// NInit is the number of seeded restarts; the lowest inertia run wins.
	// Default: 10
	NInit int `koanf:"n_init" validate:"min=1"`

	// Tolerance is the centroid shift below which a run has converged.
	// Default: 0.0001
	Tolerance float64 `koanf:"tolerance" validate:"gte=0"`

	// Seed makes clustering reproducible.
	// Default: 42
	Seed int64 `koanf:"seed"`
}

// RecommendConfig controls intra-cluster recommendations.
type RecommendConfig struct {
	// TopN is the number of categories returned when the caller does not ask
	// for a specific count.
	// Default: 3
	TopN int `koanf:"top_n" validate:"min=1"`

	// NeighborWindow is how many most-similar peers vote on categories.
	// Default: 5
	NeighborWindow int `koanf:"neighbor_window" validate:"min=1"`

	// StandardizeSimilarity computes cosine similarity on standardized
	// features instead of raw values.
	// Default: false
	StandardizeSimilarity bool `koanf:"standardize_similarity"`
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// TextfilePath, when set, receives the Prometheus text exposition of all
	// collected metrics when the command finishes.
	// Default: "" (disabled)
	TextfilePath string `koanf:"textfile_path"`
}
