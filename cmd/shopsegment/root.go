// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/shopsegment/internal/config"
	"github.com/tomtom215/shopsegment/internal/logging"
	"github.com/tomtom215/shopsegment/internal/metrics"
	"github.com/tomtom215/shopsegment/internal/recommend"
	"github.com/tomtom215/shopsegment/internal/source"
)

// Output formats.
const (
	outputJSON  = "json"
	outputTable = "table"
)

// rootOptions holds the persistent flag values.
type rootOptions struct {
	configPath  string
	dataPath    string
	table       string
	delimiter   string
	k           int
	seed        int64
	standardize bool
	output      string
	metricsFile string
	logLevel    string
}

// app carries state shared by all subcommands of one invocation.
type app struct {
	opts rootOptions
	cfg  *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "shopsegment",
		Short: "Customer segmentation and category recommendations",
		Long: `shopsegment groups customers into behavioral segments from their
transaction history and recommends product categories bought by the most
similar customers in the same segment.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.finish,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.opts.configPath, "config", "", "config file (default: shopsegment.yaml or config.yaml when present)")
	f.StringVar(&a.opts.dataPath, "data", "", "dataset file, or directory holding a CSV file")
	f.StringVar(&a.opts.table, "table", "", "table to read from SQLite and DuckDB files")
	f.StringVar(&a.opts.delimiter, "delimiter", "", "field delimiter for delimited text (default: tab for .tsv, comma otherwise)")
	f.IntVar(&a.opts.k, "k", 0, "number of customer segments")
	f.Int64Var(&a.opts.seed, "seed", 0, "random seed for clustering")
	f.BoolVar(&a.opts.standardize, "standardize", false, "rank peers on standardized features instead of raw values")
	f.StringVarP(&a.opts.output, "output", "o", outputJSON, "output format: json or table")
	f.StringVar(&a.opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when the command finishes")
	f.StringVar(&a.opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	cmd.AddCommand(
		newIDsCmd(a),
		newProfileCmd(a),
		newRecommendCmd(a),
		newSummaryCmd(a),
		newClustersCmd(a),
	)
	return cmd
}

// setup loads configuration, applies flag overrides and initializes logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path = a.opts.dataPath
	}
	if flags.Changed("table") {
		cfg.Data.Table = a.opts.table
	}
	if flags.Changed("delimiter") {
		cfg.Data.Delimiter = a.opts.delimiter
	}
	if flags.Changed("k") {
		cfg.Cluster.K = a.opts.k
	}
	if flags.Changed("seed") {
		cfg.Cluster.Seed = a.opts.seed
	}
	if flags.Changed("standardize") {
		cfg.Recommend.StandardizeSimilarity = a.opts.standardize
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.TextfilePath = a.opts.metricsFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	switch a.opts.output {
	case outputJSON, outputTable:
	default:
		return fmt.Errorf("unknown output format %q (want json or table)", a.opts.output)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	a.cfg = cfg

	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), logging.WithComponent("cli")))
	return nil
}

// finish writes the metrics textfile when one is configured.
func (a *app) finish(cmd *cobra.Command, _ []string) error {
	if a.cfg == nil || a.cfg.Metrics.TextfilePath == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
		return err
	}
	logging.Ctx(cmd.Context()).Debug().
		Str("path", a.cfg.Metrics.TextfilePath).
		Msg("Metrics written")
	return nil
}

// recommendConfig maps the application configuration onto the engine's.
func (a *app) recommendConfig() *recommend.Config {
	return &recommend.Config{
		Cluster: recommend.ClusterConfig{
			K:             a.cfg.Cluster.K,
			MaxIterations: a.cfg.Cluster.MaxIterations,
			NInit:         a.cfg.Cluster.NInit,
			Tolerance:     a.cfg.Cluster.Tolerance,
			Seed:          a.cfg.Cluster.Seed,
		},
		Recommend: recommend.RecommendConfig{
			TopN:                  a.cfg.Recommend.TopN,
			NeighborWindow:        a.cfg.Recommend.NeighborWindow,
			StandardizeSimilarity: a.cfg.Recommend.StandardizeSimilarity,
		},
	}
}

// openSession locates the dataset, loads it and clusters it. The returned
// context carries the session ID for logging.
func (a *app) openSession(ctx context.Context) (*recommend.Session, context.Context, error) {
	path, err := source.Discover(a.cfg.Data.Path)
	if err != nil {
		return nil, ctx, err
	}

	src, err := source.Open(path, source.Options{
		Table:     a.cfg.Data.Table,
		Delimiter: a.cfg.Data.DelimiterRune(),
	})
	if err != nil {
		return nil, ctx, err
	}

	session, err := recommend.NewSession(ctx, src, a.recommendConfig(), logging.Logger())
	if err != nil {
		return nil, ctx, err
	}

	ctx = logging.ContextWithSessionID(ctx, session.ID())
	stats := session.Stats()
	logging.Ctx(ctx).Info().
		Str("source", stats.Source).
		Int("profiles", stats.Profiles).
		Int("rows_kept", stats.RowsKept()).
		Int("k", a.cfg.Cluster.K).
		Msg("Session ready")

	return session, ctx, nil
}

// withSession runs fn against a freshly opened session and closes it after.
func (a *app) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *recommend.Session) error) error {
	session, ctx, err := a.openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer session.Close() //nolint:errcheck // Close never fails

	return fn(ctx, session)
}
