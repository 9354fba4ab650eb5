// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsegment/internal/logging"
	"github.com/tomtom215/shopsegment/internal/metrics"
	"github.com/tomtom215/shopsegment/internal/validation"
)

// Session holds one loaded and clustered profile table.
//
// A Session is created by NewSession or NewSessionFromProfiles and is ready
// for queries as soon as it is returned. Query methods are safe for
// concurrent use.
type Session struct {
	id     string
	config *Config
	logger zerolog.Logger

	mu       sync.RWMutex
	profiles []CustomerProfile
	model    *ClusterModel
	stats    LoadStats
	closed   bool
}

// recommendRequest is validated before every recommendation query.
type recommendRequest struct {
	TopN int `validate:"min=1"`
}

// NewSession loads src and clusters the result. Any failure aborts creation;
// no partial session is returned.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSession(ctx context.Context, src RowSource, cfg *Config, logger zerolog.Logger) (*Session, error) {
	s, err := newSession(cfg, logger)
	if err != nil {
		return nil, err
	}

	profiles, stats, err := Load(ctx, src, s.logger)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Describe(), err)
	}
	s.stats = stats

	if err := s.init(ctx, profiles); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSessionFromProfiles clusters already aggregated profiles. Cluster labels
// on the input are ignored and the input is not modified.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSessionFromProfiles(ctx context.Context, profiles []CustomerProfile, cfg *Config, logger zerolog.Logger) (*Session, error) {
	s, err := newSession(cfg, logger)
	if err != nil {
		return nil, err
	}
	s.stats = LoadStats{Source: "profiles", Profiles: len(profiles)}

	if err := s.init(ctx, profiles); err != nil {
		return nil, err
	}
	return s, nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newSession(cfg *Config, logger zerolog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	id := logging.GenerateSessionID()
	return &Session{
		id:     id,
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Str("session_id", id).Logger(),
	}, nil
}

// init clusters profiles with the configured k.
func (s *Session) init(ctx context.Context, profiles []CustomerProfile) error {
	labeled, model, err := Cluster(ctx, profiles, s.config.Cluster, s.logger)
	if err != nil {
		return fmt.Errorf("cluster: %w", err)
	}
	s.profiles = labeled
	s.model = model
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns a copy of the session configuration.
func (s *Session) Config() *Config {
	return s.config.Clone()
}

// ListCustomerIDs returns each distinct customer ID once, in table order.
func (s *Session) ListCustomerIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	seen := make(map[string]struct{}, len(s.profiles))
	ids := make([]string, 0, len(s.profiles))
	for i := range s.profiles {
		id := s.profiles[i].CustomerID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetProfile returns the first profile with the given customer ID.
func (s *Session) GetProfile(id string) (CustomerProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return CustomerProfile{}, false, ErrSessionClosed
	}

	for i := range s.profiles {
		if s.profiles[i].CustomerID == id {
			return s.profiles[i], true, nil
		}
	}
	return CustomerProfile{}, false, nil
}

// ProfilesFor returns every profile with the given customer ID, in table
// order. A customer recorded under several genders or tenures has more
// than one.
func (s *Session) ProfilesFor(id string) ([]CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	var out []CustomerProfile
	for i := range s.profiles {
		if s.profiles[i].CustomerID == id {
			out = append(out, s.profiles[i])
		}
	}
	return out, nil
}

// Profiles returns a copy of the labeled profile table.
func (s *Session) Profiles() ([]CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	out := make([]CustomerProfile, len(s.profiles))
	copy(out, s.profiles)
	return out, nil
}

// Recommend returns up to topN categories for the customer. A topN of zero
// uses the configured default. Unknown customers yield a StatusNotFound
// result, not an error.
func (s *Session) Recommend(ctx context.Context, id string, topN int) (Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if topN == 0 {
		topN = s.config.Recommend.TopN
	}
	if verr := validation.ValidateStruct(&recommendRequest{TopN: topN}); verr != nil {
		metrics.RecordRecommend(metrics.OutcomeError, time.Since(start))
		return Result{}, verr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Result{}, ErrSessionClosed
	}

	rec, err := NewRecommender(s.config.Recommend, s.model)
	if err != nil {
		metrics.RecordRecommend(metrics.OutcomeError, time.Since(start))
		return Result{}, err
	}
	res, err := rec.Recommend(s.profiles, id, topN)
	if err != nil {
		metrics.RecordRecommend(metrics.OutcomeError, time.Since(start))
		return Result{}, err
	}

	outcome := metrics.OutcomeFound
	switch {
	case !res.Found():
		outcome = metrics.OutcomeNotFound
	case len(res.Categories) == 0:
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommend(outcome, time.Since(start))

	s.logger.Debug().
		Str("customer_id", id).
		Str("status", res.Status.String()).
		Int("top_n", topN).
		Int("neighbors", len(res.Neighbors)).
		Strs("categories", res.Categories).
		Msg("Recommendation computed")

	return res, nil
}

// ClusterSummary returns per-cluster feature means.
func (s *Session) ClusterSummary() (map[int]ClusterMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	return Summarize(s.profiles)
}

// Model returns a snapshot of the fitted cluster model.
func (s *Session) Model() (ClusterModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ClusterModel{}, ErrSessionClosed
	}
	return cloneModel(s.model), nil
}

// Stats returns how the session's dataset was loaded.
func (s *Session) Stats() LoadStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Recluster replaces the cluster labels using k segments. On error the
// session keeps its previous labels and model.
func (s *Session) Recluster(ctx context.Context, k int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	cfg := s.config.Cluster
	cfg.K = k
	labeled, model, err := Cluster(ctx, s.profiles, cfg, s.logger)
	if err != nil {
		return fmt.Errorf("recluster: %w", err)
	}

	s.profiles = labeled
	s.model = model
	s.config.Cluster.K = k
	return nil
}

// Close discards the session state. Later queries return ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.profiles = nil
	s.model = nil
	s.logger.Debug().Msg("Session closed")
	return nil
}

// cloneModel deep-copies a model so callers cannot alter session state.
func cloneModel(m *ClusterModel) ClusterModel {
	out := *m
	out.FeatureMeans = append([]float64(nil), m.FeatureMeans...)
	out.FeatureScales = append([]float64(nil), m.FeatureScales...)
	out.Sizes = append([]int(nil), m.Sizes...)
	out.Centroids = make([][]float64, len(m.Centroids))
	for i, c := range m.Centroids {
		out.Centroids[i] = append([]float64(nil), c...)
	}
	return out
}
