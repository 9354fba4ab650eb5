// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Required dataset columns.
const (
	ColumnCustomerID      = "CustomerID"
	ColumnGender          = "Gender"
	ColumnTenureMonths    = "Tenure_Months"
	ColumnOnlineSpend     = "Online_Spend"
	ColumnOfflineSpend    = "Offline_Spend"
	ColumnDiscountPct     = "Discount_pct"
	ColumnProductCategory = "Product_Category"
)

// RequiredColumns lists the required columns in a fixed order.
var RequiredColumns = []string{
	ColumnCustomerID,
	ColumnGender,
	ColumnTenureMonths,
	ColumnOnlineSpend,
	ColumnOfflineSpend,
	ColumnDiscountPct,
	ColumnProductCategory,
}

// naMarkers are cell values read as missing, matching the default NA
// markers of common dataframe CSV readers.
var naMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// NormalizeColumnName canonicalizes a header for matching: NFKC, trimmed,
// case-folded. A leading byte order mark is removed.
func NormalizeColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(name)))
}

// cleanLabel canonicalizes a text cell: NFKC with runs of whitespace
// collapsed to one space.
func cleanLabel(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// isMissing reports whether a cell counts as missing.
func isMissing(cell string) bool {
	_, ok := naMarkers[strings.TrimSpace(cell)]
	return ok
}

// columnIndex maps each required column to its position in a header.
type columnIndex map[string]int

// resolveColumns locates the required columns in header. The first matching
// header wins when a name repeats.
func resolveColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeColumnName(h)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	idx := make(columnIndex, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		pos, ok := positions[NormalizeColumnName(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = pos
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return idx, nil
}

// cell returns the trimmed value of column col in record, or "" when the
// record is too short.
func (ci columnIndex) cell(record []string, col string) string {
	pos := ci[col]
	if pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
