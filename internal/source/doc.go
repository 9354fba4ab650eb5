// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

// Package source reads raw transaction tables for the recommend package.
//
// A dataset is located with Discover and opened with Open, which picks a
// reader from the file extension:
//
//	.csv, .tsv, .txt        CSVSource (encoding/csv)
//	.db, .sqlite, .sqlite3  SQLiteSource (modernc.org/sqlite)
//	.duckdb                 DuckDBSource reading a table
//	.parquet                DuckDBSource scanning the file with read_parquet
//
// Every reader returns a recommend.Table of string cells. SQL NULLs become
// empty strings, so the cleaning rules in recommend.CleanRows apply the same
// way to every format. Failures to locate or read a dataset wrap
// recommend.ErrDataSource.
//
// Usage:
//
//	path, err := source.Discover(cfg.Data.Path)
//	if err != nil {
//		return err
//	}
//	src, err := source.Open(path, source.Options{Table: cfg.Data.Table})
//	if err != nil {
//		return err
//	}
//	session, err := recommend.NewSession(ctx, src, recCfg, logger)
package source
