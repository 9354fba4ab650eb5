// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	// DuckDB driver for .duckdb databases and Parquet scans
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/shopsegment/internal/recommend"
)

// DuckDBSource reads a table from a DuckDB database file, or scans a Parquet
// file through an in-memory DuckDB connection.
type DuckDBSource struct {
	path    string
	table   string
	parquet bool
}

// NewDuckDBSource creates a reader for table in the DuckDB database at path.
func NewDuckDBSource(path, table string) *DuckDBSource {
	return &DuckDBSource{path: path, table: table}
}

// NewParquetSource creates a reader for the Parquet file at path.
func NewParquetSource(path string) *DuckDBSource {
	return &DuckDBSource{path: path, parquet: true}
}

// Describe returns the path, and the table for database files.
func (s *DuckDBSource) Describe() string {
	if s.parquet {
		return s.path
	}
	return s.path + "#" + s.table
}

// ReadTable reads every row.
func (s *DuckDBSource) ReadTable(ctx context.Context) (*recommend.Table, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrDataSource, err)
	}

	dsn, query := "", "SELECT * FROM read_parquet("+quoteLiteral(s.path)+")"
	if !s.parquet {
		dsn = s.path + "?access_mode=READ_ONLY"
		query = "SELECT * FROM " + quoteIdent(s.table)
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open duckdb %s: %w", recommend.ErrDataSource, s.path, err)
	}
	defer db.Close() //nolint:errcheck // read-only connection

	if !s.parquet {
		if err := verifyDuckDBTable(ctx, db, s.table); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", recommend.ErrDataSource, s.path, err)
		}
	}

	table, err := readQuery(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", recommend.ErrDataSource, s.Describe(), err)
	}
	return table, nil
}

// verifyDuckDBTable checks that the table exists.
func verifyDuckDBTable(ctx context.Context, db *sql.DB, table string) error {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?",
		table,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("check table %s: %w", table, err)
	}
	if count == 0 {
		return fmt.Errorf("table %s not found", table)
	}
	return nil
}
