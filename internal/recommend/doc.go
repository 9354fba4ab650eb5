// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

// Package recommend turns raw shopping transactions into product category
// recommendations.
//
// # Pipeline
//
//	RowSource -> Load/Aggregate -> Cluster -> Recommender / Summarize
//
//   - Load reads a tabular dataset, resolves the required columns and drops
//     incomplete rows.
//   - Aggregate reduces transactions to one CustomerProfile per
//     (customer, gender, tenure) key.
//   - Cluster segments profiles with seeded k-means over the standardized
//     tenure, online spend, offline spend and discount features.
//   - Recommender ranks the target's cluster peers by cosine similarity and
//     tallies the dominant categories of the closest peers.
//   - Summarize reports per-cluster feature means.
//
// # Sessions
//
// Session bundles one loaded, clustered profile table with its model. It is
// created by NewSession (load + cluster) and discarded by Close. Queries take
// a shared lock and may run concurrently; Recluster takes the exclusive lock.
//
// # Errors
//
// Loading and clustering failures are returned as errors and abort session
// creation. An unknown customer is not an error: Recommend returns a Result
// whose Status is StatusNotFound.
package recommend
