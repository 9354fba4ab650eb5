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

	// Pure-Go SQLite driver
	_ "modernc.org/sqlite"

	"github.com/tomtom215/shopsegment/internal/recommend"
)

// SQLiteSource reads one table of a SQLite database file.
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource creates a reader for table in the database at path.
func NewSQLiteSource(path, table string) *SQLiteSource {
	return &SQLiteSource{path: path, table: table}
}

// Describe returns the path and table.
func (s *SQLiteSource) Describe() string {
	return s.path + "#" + s.table
}

// ReadTable reads every row of the table. The database file must already
// exist; the driver would otherwise create an empty one.
func (s *SQLiteSource) ReadTable(ctx context.Context) (*recommend.Table, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrDataSource, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %w", recommend.ErrDataSource, s.path, err)
	}
	defer db.Close() //nolint:errcheck // read-only connection

	if err := verifySQLiteTable(ctx, db, s.table); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", recommend.ErrDataSource, s.path, err)
	}

	table, err := readQuery(ctx, db, "SELECT * FROM "+quoteIdent(s.table))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", recommend.ErrDataSource, s.Describe(), err)
	}
	return table, nil
}

// verifySQLiteTable checks that the table exists.
func verifySQLiteTable(ctx context.Context, db *sql.DB, table string) error {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type IN ('table', 'view') AND name = ?",
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
