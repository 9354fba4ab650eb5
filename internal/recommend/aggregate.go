// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsegment/internal/metrics"
)

// errBadNumber marks a row whose numeric cell did not parse.
var errBadNumber = errors.New("bad number")

// Load reads src, drops incomplete rows and aggregates the rest into
// profiles.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Load(ctx context.Context, src RowSource, logger zerolog.Logger) ([]CustomerProfile, LoadStats, error) {
	start := time.Now()
	stats := LoadStats{Source: src.Describe()}

	table, err := src.ReadTable(ctx)
	if err != nil {
		return nil, stats, err
	}

	rows, err := CleanRows(table, &stats)
	if err != nil {
		return nil, stats, err
	}

	profiles := Aggregate(rows)
	stats.Profiles = len(profiles)
	stats.Duration = time.Since(start)

	metrics.RecordLoad(stats.RowsRead, stats.DroppedMissing, stats.DroppedBadNumber, stats.Profiles)
	logger.Info().
		Str("source", stats.Source).
		Int("rows_read", stats.RowsRead).
		Int("dropped_missing", stats.DroppedMissing).
		Int("dropped_bad_number", stats.DroppedBadNumber).
		Int("profiles", stats.Profiles).
		Dur("duration", stats.Duration).
		Msg("Loaded customer profiles")

	return profiles, stats, nil
}

// CleanRows resolves the required columns of table and converts each record
// into a RawRow. Records with a missing or unparsable required field are
// dropped and counted in stats.
func CleanRows(table *Table, stats *LoadStats) ([]RawRow, error) {
	idx, err := resolveColumns(table.Columns)
	if err != nil {
		return nil, err
	}

	stats.RowsRead = len(table.Rows)
	rows := make([]RawRow, 0, len(table.Rows))
	for _, record := range table.Rows {
		row, err := parseRow(idx, record)
		switch {
		case err == nil:
			rows = append(rows, row)
		case errors.Is(err, errBadNumber):
			stats.DroppedBadNumber++
		default:
			stats.DroppedMissing++
		}
	}
	return rows, nil
}

// parseRow builds a RawRow from one record.
func parseRow(idx columnIndex, record []string) (RawRow, error) {
	for _, col := range RequiredColumns {
		if isMissing(idx.cell(record, col)) {
			return RawRow{}, fmt.Errorf("column %s is empty", col)
		}
	}

	var nums [4]float64
	for i, col := range []string{ColumnTenureMonths, ColumnOnlineSpend, ColumnOfflineSpend, ColumnDiscountPct} {
		v, err := strconv.ParseFloat(idx.cell(record, col), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return RawRow{}, fmt.Errorf("column %s: %w", col, errBadNumber)
		}
		nums[i] = v
	}

	return RawRow{
		CustomerID:      idx.cell(record, ColumnCustomerID),
		Gender:          idx.cell(record, ColumnGender),
		TenureMonths:    nums[0],
		OnlineSpend:     nums[1],
		OfflineSpend:    nums[2],
		DiscountPct:     nums[3],
		ProductCategory: cleanLabel(idx.cell(record, ColumnProductCategory)),
	}, nil
}

// profileKey identifies one profile.
type profileKey struct {
	id     string
	gender string
	tenure float64
}

// profileAccumulator gathers the rows of one key.
type profileAccumulator struct {
	key                   profileKey
	online, offline, disc float64
	n                     int
	counts                map[string]int
	order                 []string
}

// dominant returns the most frequent category, ties broken by first
// occurrence. Returns "" when no category was seen.
func (a *profileAccumulator) dominant() string {
	best, bestCount := "", 0
	for _, c := range a.order {
		if a.counts[c] > bestCount {
			best, bestCount = c, a.counts[c]
		}
	}
	return best
}

// Aggregate groups rows by (customer, gender, tenure) and returns one
// profile per group, ordered by customer ID, then gender, then tenure.
// Returned profiles are Unclustered.
func Aggregate(rows []RawRow) []CustomerProfile {
	groups := make(map[profileKey]*profileAccumulator)
	for i := range rows {
		r := &rows[i]
		key := profileKey{id: r.CustomerID, gender: r.Gender, tenure: r.TenureMonths}
		acc, ok := groups[key]
		if !ok {
			acc = &profileAccumulator{key: key, counts: make(map[string]int)}
			groups[key] = acc
		}
		acc.online += r.OnlineSpend
		acc.offline += r.OfflineSpend
		acc.disc += r.DiscountPct
		acc.n++
		if r.ProductCategory != "" {
			if acc.counts[r.ProductCategory] == 0 {
				acc.order = append(acc.order, r.ProductCategory)
			}
			acc.counts[r.ProductCategory]++
		}
	}

	profiles := make([]CustomerProfile, 0, len(groups))
	for _, acc := range groups {
		n := float64(acc.n)
		profiles = append(profiles, CustomerProfile{
			CustomerID:       acc.key.id,
			Gender:           acc.key.gender,
			TenureMonths:     acc.key.tenure,
			OnlineSpend:      acc.online / n,
			OfflineSpend:     acc.offline / n,
			DiscountPct:      acc.disc / n,
			DominantCategory: acc.dominant(),
			Transactions:     acc.n,
			Cluster:          Unclustered,
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profileLess(&profiles[i], &profiles[j])
	})
	return profiles
}

// profileLess orders profiles by customer ID, gender, then tenure.
func profileLess(a, b *CustomerProfile) bool {
	if c := CompareCustomerIDs(a.CustomerID, b.CustomerID); c != 0 {
		return c < 0
	}
	if a.Gender != b.Gender {
		return a.Gender < b.Gender
	}
	return a.TenureMonths < b.TenureMonths
}

// CompareCustomerIDs orders identifiers: integers first in numeric order,
// then everything else lexically.
func CompareCustomerIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return strings.Compare(a, b)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
