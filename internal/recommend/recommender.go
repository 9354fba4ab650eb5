// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/shopsegment/internal/recommend/algorithms"
)

// Recommender ranks a customer's cluster peers and tallies their categories.
type Recommender struct {
	config RecommendConfig
	model  *ClusterModel
}

// NewRecommender creates a recommender. model supplies the standardization
// parameters and is required only when cfg.StandardizeSimilarity is set.
func NewRecommender(cfg RecommendConfig, model *ClusterModel) (*Recommender, error) {
	if cfg.NeighborWindow < 1 {
		return nil, fmt.Errorf("neighbor_window must be positive, got %d", cfg.NeighborWindow)
	}
	if cfg.StandardizeSimilarity && model == nil {
		return nil, errors.New("standardized similarity requires a cluster model")
	}
	return &Recommender{config: cfg, model: model}, nil
}

// Recommend returns up to topN categories for targetID.
//
// The first profile with targetID (table order) is the target. Its cluster
// peers are ranked by cosine similarity, highest first with ties kept in
// table order, and the dominant categories of the best NeighborWindow peers
// are counted. Categories are ordered by count, ties by first appearance in
// the ranked peers. An unknown targetID yields a StatusNotFound result.
func (r *Recommender) Recommend(profiles []CustomerProfile, targetID string, topN int) (Result, error) {
	if topN < 1 {
		return Result{}, fmt.Errorf("topN must be positive, got %d", topN)
	}
	for i := range profiles {
		if !profiles[i].IsClustered() {
			return Result{}, ErrNotClustered
		}
	}

	target := -1
	for i := range profiles {
		if profiles[i].CustomerID == targetID {
			target = i
			break
		}
	}
	if target < 0 {
		return NotFoundResult(targetID), nil
	}

	members := r.neighborhood(profiles, target)
	neighbors := r.rankNeighbors(profiles, members, target)
	if len(neighbors) > r.config.NeighborWindow {
		neighbors = neighbors[:r.config.NeighborWindow]
	}

	targetProfile := profiles[target]
	return Result{
		Status:     StatusFound,
		CustomerID: targetID,
		Profile:    &targetProfile,
		Categories: tallyCategories(neighbors, topN),
		Neighbors:  neighbors,
	}, nil
}

// neighborhood returns the table indices of all profiles sharing the
// target's cluster, the target included, in table order.
func (r *Recommender) neighborhood(profiles []CustomerProfile, target int) []int {
	label := profiles[target].Cluster
	var members []int
	for i := range profiles {
		if profiles[i].Cluster == label {
			members = append(members, i)
		}
	}
	return members
}

// rankNeighbors scores every neighborhood member against the target and
// returns all members except the target row, most similar first.
func (r *Recommender) rankNeighbors(profiles []CustomerProfile, members []int, target int) []Neighbor {
	vectors := make([][]float64, len(members))
	targetPos := 0
	for pos, idx := range members {
		vectors[pos] = r.vector(&profiles[idx])
		if idx == target {
			targetPos = pos
		}
	}

	sims := algorithms.CosineMatrix(vectors)[targetPos]

	neighbors := make([]Neighbor, 0, len(members)-1)
	for pos, idx := range members {
		if pos == targetPos {
			continue
		}
		neighbors = append(neighbors, Neighbor{
			CustomerID:       profiles[idx].CustomerID,
			Similarity:       sims[pos],
			DominantCategory: profiles[idx].DominantCategory,
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	return neighbors
}

// vector returns the feature vector used for similarity.
func (r *Recommender) vector(p *CustomerProfile) []float64 {
	if r.config.StandardizeSimilarity {
		return r.model.Standardize(p.Features())
	}
	return p.Features()
}

// tallyCategories counts neighbor categories and returns the topN most
// frequent, ties in first-seen order. Neighbors without a category are
// skipped.
func tallyCategories(neighbors []Neighbor, topN int) []string {
	counts := make(map[string]int)
	var order []string
	for _, n := range neighbors {
		if n.DominantCategory == "" {
			continue
		}
		if counts[n.DominantCategory] == 0 {
			order = append(order, n.DominantCategory)
		}
		counts[n.DominantCategory]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	if order == nil {
		order = []string{}
	}
	return order
}
