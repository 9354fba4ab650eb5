// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"context"
	"strconv"
)

// memorySource is a RowSource backed by an in-memory table.
type memorySource struct {
	table *Table
	err   error
}

func (m *memorySource) ReadTable(context.Context) (*Table, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

func (m *memorySource) Describe() string { return "memory" }

var testHeader = []string{
	"CustomerID", "Gender", "Tenure_Months", "Online_Spend",
	"Offline_Spend", "Discount_pct", "Product_Category",
}

// txn builds one transaction record in testHeader order.
func txn(id, gender string, tenure, online, offline, discount float64, category string) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{id, gender, f(tenure), f(online), f(offline), f(discount), category}
}

// profile builds an unclustered profile.
func profile(id string, tenure, online, offline, discount float64, category string) CustomerProfile {
	return CustomerProfile{
		CustomerID:       id,
		Gender:           "F",
		TenureMonths:     tenure,
		OnlineSpend:      online,
		OfflineSpend:     offline,
		DiscountPct:      discount,
		DominantCategory: category,
		Transactions:     1,
		Cluster:          Unclustered,
	}
}

// scenarioProfiles returns two near-identical customers and one outlier.
func scenarioProfiles() []CustomerProfile {
	return []CustomerProfile{
		profile("1", 10, 100, 50, 5, "A"),
		profile("2", 11, 105, 52, 5, "A"),
		profile("3", 50, 10, 500, 1, "B"),
	}
}

// testConfig returns the default configuration with k clusters.
func testConfig(k int) *Config {
	cfg := DefaultConfig()
	cfg.Cluster.K = k
	return cfg
}

// withLabels returns a copy of profiles labeled in order.
func withLabels(profiles []CustomerProfile, labels ...int) []CustomerProfile {
	out := make([]CustomerProfile, len(profiles))
	copy(out, profiles)
	for i := range out {
		out[i].Cluster = labels[i]
	}
	return out
}
