// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"shopsegment.yaml",
	"shopsegment.yml",
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "SHOPSEGMENT_CONFIG"

// defaultConfig returns a Config with all default values.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:      "data",
			Table:     "transactions",
			Delimiter: "",
		},
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
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without consulting files or
// the environment.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration with layered sources:
//  1. Defaults
//  2. Config file: path if non-empty, otherwise the first file found by findConfigFile
//  3. Environment variables
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"shopsegment_data_path":      "data.path",
	"shopsegment_data_table":     "data.table",
	"shopsegment_data_delimiter": "data.delimiter",

	"cluster_k":              "cluster.k",
	"cluster_max_iterations": "cluster.max_iterations",
	"cluster_n_init":         "cluster.n_init",
	"cluster_tolerance":      "cluster.tolerance",
	"cluster_seed":           "cluster.seed",

	"recommend_top_n":                  "recommend.top_n",
	"recommend_neighbor_window":        "recommend.neighbor_window",
	"recommend_standardize_similarity": "recommend.standardize_similarity",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"metrics_textfile_path": "metrics.textfile_path",
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return "" and are ignored.
//
// Examples:
//   - SHOPSEGMENT_DATA_PATH -> data.path
//   - CLUSTER_K -> cluster.k
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
