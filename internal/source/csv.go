// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/shopsegment/internal/recommend"
)

// CSVSource reads a delimited text file with a header row.
type CSVSource struct {
	path      string
	delimiter rune
}

// NewCSVSource creates a reader for path using the given field delimiter.
func NewCSVSource(path string, delimiter rune) *CSVSource {
	return &CSVSource{path: path, delimiter: delimiter}
}

// Describe returns the file path.
func (s *CSVSource) Describe() string {
	return s.path
}

// ReadTable reads the whole file. Records may have fewer or more fields than
// the header.
func (s *CSVSource) ReadTable(ctx context.Context) (*recommend.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrDataSource, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return readDelimited(ctx, f, s.delimiter, s.path)
}

func readDelimited(ctx context.Context, r io.Reader, delimiter rune, name string) (*recommend.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", recommend.ErrDataSource, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %w", recommend.ErrDataSource, name, err)
	}

	table := &recommend.Table{Columns: header}
	for {
		if len(table.Rows)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", recommend.ErrDataSource, name, err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}
