// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"context"
	"fmt"
	"time"
)

// Unclustered is the Cluster value of a profile that has not been labeled.
const Unclustered = -1

// FeatureNames lists the numeric profile features in vector order.
var FeatureNames = []string{"tenure_months", "online_spend", "offline_spend", "discount_pct"}

// Table is a dataset as read from a source: a header row and string cells.
type Table struct {
	// Columns holds the header names exactly as read.
	Columns []string

	// Rows holds the data records. A row may be shorter than Columns;
	// missing cells count as empty.
	Rows [][]string
}

// RowSource provides the raw transaction table.
type RowSource interface {
	// ReadTable reads the full dataset.
	ReadTable(ctx context.Context) (*Table, error)

	// Describe returns a short human-readable description such as a path.
	Describe() string
}

// RawRow is one cleaned transaction.
type RawRow struct {
	CustomerID      string
	Gender          string
	TenureMonths    float64
	OnlineSpend     float64
	OfflineSpend    float64
	DiscountPct     float64
	ProductCategory string
}

// CustomerProfile is the behavioral summary of one
// (customer, gender, tenure) key.
type CustomerProfile struct {
	// CustomerID is the customer identifier as read from the dataset.
	CustomerID string `json:"customer_id"`

	// Gender as recorded on the customer's transactions.
	Gender string `json:"gender"`

	// TenureMonths is the customer's tenure.
	TenureMonths float64 `json:"tenure_months"`

	// OnlineSpend is the mean online spend across the customer's transactions.
	OnlineSpend float64 `json:"online_spend"`

	// OfflineSpend is the mean offline spend.
	OfflineSpend float64 `json:"offline_spend"`

	// DiscountPct is the mean discount percentage.
	DiscountPct float64 `json:"discount_pct"`

	// DominantCategory is the most frequent product category, or "" when
	// the customer has none.
	DominantCategory string `json:"dominant_category,omitempty"`

	// Transactions is the number of rows aggregated into this profile.
	Transactions int `json:"transactions"`

	// Cluster is the segment label, or Unclustered.
	Cluster int `json:"cluster"`
}

// Features returns the profile's numeric features in FeatureNames order.
//
//nolint:gocritic // hugeParam: profiles are passed by value throughout
func (p CustomerProfile) Features() []float64 {
	return []float64{p.TenureMonths, p.OnlineSpend, p.OfflineSpend, p.DiscountPct}
}

// HasCategory reports whether the profile has a dominant category.
//
//nolint:gocritic // hugeParam: profiles are passed by value throughout
func (p CustomerProfile) HasCategory() bool {
	return p.DominantCategory != ""
}

// IsClustered reports whether the profile carries a cluster label.
//
//nolint:gocritic // hugeParam: profiles are passed by value throughout
func (p CustomerProfile) IsClustered() bool {
	return p.Cluster >= 0
}

// ResultStatus tags a recommendation result.
type ResultStatus int

const (
	// StatusFound indicates the target customer exists.
	StatusFound ResultStatus = iota
	// StatusNotFound indicates no profile matches the target customer.
	StatusNotFound
)

// String returns a human-readable name for the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ResultStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ResultStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "found":
		*s = StatusFound
	case "not_found":
		*s = StatusNotFound
	default:
		return fmt.Errorf("unknown result status %q", text)
	}
	return nil
}

// Neighbor is one ranked peer of the target customer.
type Neighbor struct {
	CustomerID       string  `json:"customer_id"`
	Similarity       float64 `json:"similarity"`
	DominantCategory string  `json:"dominant_category,omitempty"`
}

// Result is the outcome of a recommendation query.
type Result struct {
	// Status is StatusFound or StatusNotFound.
	Status ResultStatus `json:"status"`

	// CustomerID is the requested customer.
	CustomerID string `json:"customer_id"`

	// Profile is the profile the recommendation was computed for.
	// Nil when Status is StatusNotFound.
	Profile *CustomerProfile `json:"profile,omitempty"`

	// Categories holds at most topN category names, most recommended first.
	Categories []string `json:"categories"`

	// Neighbors holds the ranked peers whose categories were tallied.
	Neighbors []Neighbor `json:"neighbors,omitempty"`
}

// Found reports whether the target customer exists.
func (r *Result) Found() bool {
	return r.Status == StatusFound
}

// NotFoundResult returns the tagged result for an unknown customer.
func NotFoundResult(customerID string) Result {
	return Result{Status: StatusNotFound, CustomerID: customerID, Categories: []string{}}
}

// ClusterMetrics are the rounded mean features of one cluster.
type ClusterMetrics struct {
	Cluster          int     `json:"cluster"`
	Customers        int     `json:"customers"`
	MeanTenureMonths float64 `json:"mean_tenure_months"`
	MeanOnlineSpend  float64 `json:"mean_online_spend"`
	MeanOfflineSpend float64 `json:"mean_offline_spend"`
	MeanDiscountPct  float64 `json:"mean_discount_pct"`
}

// ClusterModel is a read-only snapshot of a fitted segmentation.
type ClusterModel struct {
	// K is the number of clusters.
	K int `json:"k"`

	// Seed is the random seed the model was fitted with.
	Seed int64 `json:"seed"`

	// FeatureMeans and FeatureScales are the standardization parameters,
	// in FeatureNames order.
	FeatureMeans  []float64 `json:"feature_means"`
	FeatureScales []float64 `json:"feature_scales"`

	// Centroids are the cluster centers in standardized feature space,
	// indexed by label.
	Centroids [][]float64 `json:"centroids"`

	// Sizes holds the member count of each cluster.
	Sizes []int `json:"sizes"`

	// Inertia is the within-cluster sum of squared distances.
	Inertia float64 `json:"inertia"`

	// Iterations is the number of iterations the winning restart used.
	Iterations int `json:"iterations"`

	// FittedAt is when clustering completed.
	FittedAt time.Time `json:"fitted_at"`
}

// Standardize maps raw features into the model's standardized space.
func (m *ClusterModel) Standardize(features []float64) []float64 {
	out := make([]float64, len(features))
	for j, v := range features {
		out[j] = (v - m.FeatureMeans[j]) / m.FeatureScales[j]
	}
	return out
}

// LoadStats describes how a dataset was read and cleaned.
type LoadStats struct {
	// Source describes where the rows came from.
	Source string `json:"source"`

	// RowsRead is the number of data rows in the source.
	RowsRead int `json:"rows_read"`

	// DroppedMissing counts rows with an empty or NA required field.
	DroppedMissing int `json:"dropped_missing"`

	// DroppedBadNumber counts rows whose numeric field failed to parse.
	DroppedBadNumber int `json:"dropped_bad_number"`

	// Profiles is the number of customer profiles built.
	Profiles int `json:"profiles"`

	// Duration is how long loading took.
	Duration time.Duration `json:"duration"`
}

// RowsKept returns the number of rows that survived cleaning.
func (s *LoadStats) RowsKept() int {
	return s.RowsRead - s.DroppedMissing - s.DroppedBadNumber
}
