// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tomtom215/shopsegment/internal/recommend"
)

// DefaultTable is the table read from database files when none is given.
const DefaultTable = "transactions"

// Format identifies how a dataset file is read.
type Format string

// Supported dataset formats.
const (
	FormatCSV     Format = "csv"
	FormatSQLite  Format = "sqlite"
	FormatDuckDB  Format = "duckdb"
	FormatParquet Format = "parquet"
)

// Options control how Open reads a dataset.
type Options struct {
	// Table is the table read from SQLite and DuckDB files.
	// Default: transactions
	Table string

	// Delimiter separates fields in delimited text. Zero selects tab for
	// .tsv files and comma otherwise.
	Delimiter rune
}

// DetectFormat returns the reader format for path based on its extension.
// Unknown extensions are treated as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	case ".duckdb":
		return FormatDuckDB
	case ".parquet":
		return FormatParquet
	default:
		return FormatCSV
	}
}

// Discover resolves path to a dataset file. A regular file is returned
// unchanged. A directory yields its first *.csv file in lexical order.
func Discover(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", recommend.ErrDataSource, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("%w: read directory %s: %w", recommend.ErrDataSource, path, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no CSV file in %s", recommend.ErrDataSource, path)
	}
	sort.Strings(names)
	return filepath.Join(path, names[0]), nil
}

// Open returns a RowSource for the dataset file at path. The file must
// exist; its contents are read later by ReadTable.
func Open(path string, opts Options) (recommend.RowSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrDataSource, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", recommend.ErrDataSource, path)
	}

	table := strings.TrimSpace(opts.Table)
	if table == "" {
		table = DefaultTable
	}

	switch DetectFormat(path) {
	case FormatSQLite:
		return NewSQLiteSource(path, table), nil
	case FormatDuckDB:
		return NewDuckDBSource(path, table), nil
	case FormatParquet:
		return NewParquetSource(path), nil
	default:
		delim := opts.Delimiter
		if delim == 0 {
			delim = defaultDelimiter(path)
		}
		return NewCSVSource(path, delim), nil
	}
}

func defaultDelimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}
