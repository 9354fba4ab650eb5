// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopsegment/internal/logging"
	"github.com/tomtom215/shopsegment/internal/recommend"
)

// errCustomerNotFound is returned by profile for an unknown customer.
var errCustomerNotFound = errors.New("customer not found")

func newIDsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ids",
		Short: "List customer IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(_ context.Context, s *recommend.Session) error {
				ids, err := s.ListCustomerIDs()
				if err != nil {
					return err
				}
				return a.printer(cmd).ids(ids)
			})
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <customer-id>",
		Short: "Show the profiles of a customer",
		Long: `Show the aggregated profile of a customer. A customer recorded under more
than one gender or tenure has one profile for each.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(_ context.Context, s *recommend.Session) error {
				profiles, err := s.ProfilesFor(args[0])
				if err != nil {
					return err
				}
				if len(profiles) == 0 {
					return fmt.Errorf("%w: %s", errCustomerNotFound, args[0])
				}
				return a.printer(cmd).profiles(profiles)
			})
		},
	}
}

func newRecommendCmd(a *app) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "recommend <customer-id>",
		Short: "Recommend product categories for a customer",
		Long: `Recommend product categories for a customer from the dominant categories of
the most similar customers in the same segment. An unknown customer prints a
not_found result and exits successfully.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *recommend.Session) error {
				res, err := s.Recommend(ctx, args[0], top)
				if err != nil {
					return err
				}
				logging.Ctx(ctx).Info().
					Str("customer_id", args[0]).
					Str("status", res.Status.String()).
					Strs("categories", res.Categories).
					Msg("Recommendation served")
				return a.printer(cmd).result(&res)
			})
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "number of categories to return (default: recommend.top_n)")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show mean features per segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(_ context.Context, s *recommend.Session) error {
				summary, err := s.ClusterSummary()
				if err != nil {
					return err
				}
				return a.printer(cmd).summary(recommend.SortedMetrics(summary))
			})
		},
	}
}

func newClustersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Show the fitted segmentation and each profile's segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(_ context.Context, s *recommend.Session) error {
				model, err := s.Model()
				if err != nil {
					return err
				}
				profiles, err := s.Profiles()
				if err != nil {
					return err
				}
				return a.printer(cmd).clusters(&model, profiles)
			})
		},
	}
}
