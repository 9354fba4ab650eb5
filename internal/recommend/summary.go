// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"math"
	"sort"
)

// Summarize returns the mean features of every cluster, rounded to two
// decimals. Rounding is half-to-even.
func Summarize(profiles []CustomerProfile) (map[int]ClusterMetrics, error) {
	type sums struct {
		n        int
		tenure   float64
		online   float64
		offline  float64
		discount float64
	}

	acc := make(map[int]*sums)
	for i := range profiles {
		p := &profiles[i]
		if !p.IsClustered() {
			return nil, ErrNotClustered
		}
		s, ok := acc[p.Cluster]
		if !ok {
			s = &sums{}
			acc[p.Cluster] = s
		}
		s.n++
		s.tenure += p.TenureMonths
		s.online += p.OnlineSpend
		s.offline += p.OfflineSpend
		s.discount += p.DiscountPct
	}

	out := make(map[int]ClusterMetrics, len(acc))
	for label, s := range acc {
		n := float64(s.n)
		out[label] = ClusterMetrics{
			Cluster:          label,
			Customers:        s.n,
			MeanTenureMonths: round2(s.tenure / n),
			MeanOnlineSpend:  round2(s.online / n),
			MeanOfflineSpend: round2(s.offline / n),
			MeanDiscountPct:  round2(s.discount / n),
		}
	}
	return out, nil
}

// SortedMetrics returns the summary entries ordered by cluster label.
func SortedMetrics(summary map[int]ClusterMetrics) []ClusterMetrics {
	out := make([]ClusterMetrics, 0, len(summary))
	for _, m := range summary {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cluster < out[j].Cluster })
	return out
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
