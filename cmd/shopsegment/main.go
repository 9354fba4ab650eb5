// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

// Package main is the entry point for the shopsegment command.
//
// shopsegment loads a table of shopping transactions, summarizes each
// customer, groups the customers into behavioral segments with k-means and
// recommends product categories drawn from the most similar customers in the
// same segment.
//
// # Startup
//
// Every subcommand runs the same sequence:
//
//  1. Configuration: defaults, optional YAML file, SHOPSEGMENT_* environment
//     variables, then command-line flags (Koanf v2)
//  2. Logging: zerolog to stderr, json or console format
//  3. Data: locate the dataset (a file, or the first *.csv in a directory)
//  4. Session: aggregate customer profiles and cluster them
//  5. Query: print the result as JSON or an aligned table on stdout
//
// # Supported Datasets
//
//	.csv .tsv .txt          delimited text with a header row
//	.db .sqlite .sqlite3    SQLite table (--table, default transactions)
//	.duckdb                 DuckDB table
//	.parquet                Parquet file
//
// # Example Usage
//
//	shopsegment --data data/ ids
//	shopsegment --data shop.csv profile 17850
//	shopsegment --data shop.csv --k 4 recommend 17850 --top 3
//	shopsegment --data shop.db --output table summary
//	shopsegment --data shop.csv --metrics-file /var/lib/node_exporter/shopsegment.prom clusters
//
// # Exit Status
//
// 0 on success, 1 on any error (missing dataset, missing columns, invalid
// cluster count, bad flags). Errors are logged to stderr.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/shopsegment/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
