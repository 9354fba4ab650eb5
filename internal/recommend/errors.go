// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package recommend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataSource indicates no readable dataset was found.
	ErrDataSource = errors.New("data source unavailable")

	// ErrSchema indicates required columns are missing.
	ErrSchema = errors.New("schema mismatch")

	// ErrInvalidClusterCount indicates k is outside [1, profiles].
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrNotClustered indicates a query ran before clustering.
	ErrNotClustered = errors.New("profiles are not clustered")

	// ErrSessionClosed indicates the session has been discarded.
	ErrSessionClosed = errors.New("session closed")
)

// SchemaError lists the required columns absent from a dataset.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Unwrap allows errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// InvalidClusterCountError reports a requested k that cannot be satisfied.
type InvalidClusterCountError struct {
	Requested int
	Available int
}

func (e *InvalidClusterCountError) Error() string {
	return fmt.Sprintf("invalid cluster count: requested k=%d, must be between 1 and %d distinct profiles",
		e.Requested, e.Available)
}

// Unwrap allows errors.Is(err, ErrInvalidClusterCount).
func (e *InvalidClusterCountError) Unwrap() error {
	return ErrInvalidClusterCount
}
