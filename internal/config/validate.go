// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/shopsegment/internal/validation"
)

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	return c.validateData()
}

// validateData rejects whitespace-only dataset locations.
func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("data.path must not be blank")
	}
	if strings.TrimSpace(c.Data.Table) == "" {
		return fmt.Errorf("data.table must not be blank")
	}
	return nil
}
