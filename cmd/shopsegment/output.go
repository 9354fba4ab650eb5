// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/shopsegment/internal/recommend"
)

// printer writes command results in the selected output format.
type printer struct {
	w      io.Writer
	format string
}

func (a *app) printer(cmd *cobra.Command) *printer {
	return &printer{w: cmd.OutOrStdout(), format: a.opts.output}
}

// assignment is one profile's segment in clusters output.
type assignment struct {
	CustomerID   string  `json:"customer_id"`
	Gender       string  `json:"gender"`
	TenureMonths float64 `json:"tenure_months"`
	Cluster      int     `json:"cluster"`
}

// clustersOutput is the JSON document printed by clusters.
type clustersOutput struct {
	Model       *recommend.ClusterModel `json:"model"`
	Assignments []assignment            `json:"assignments"`
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes tab-separated rows as aligned columns.
func (p *printer) table(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t")) //nolint:errcheck // surfaced by Flush
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")) //nolint:errcheck // surfaced by Flush
	}
	return tw.Flush()
}

func (p *printer) ids(ids []string) error {
	if p.format == outputJSON {
		return p.writeJSON(ids)
	}
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{id}
	}
	return p.table([]string{"CUSTOMER_ID"}, rows)
}

func (p *printer) profiles(profiles []recommend.CustomerProfile) error {
	if p.format == outputJSON {
		return p.writeJSON(profiles)
	}
	rows := make([][]string, len(profiles))
	for i := range profiles {
		pr := &profiles[i]
		rows[i] = []string{
			pr.CustomerID, pr.Gender, num(pr.TenureMonths), num(pr.OnlineSpend),
			num(pr.OfflineSpend), num(pr.DiscountPct), orDash(pr.DominantCategory),
			strconv.Itoa(pr.Transactions), strconv.Itoa(pr.Cluster),
		}
	}
	return p.table([]string{
		"CUSTOMER_ID", "GENDER", "TENURE", "ONLINE", "OFFLINE", "DISCOUNT", "CATEGORY", "TXNS", "CLUSTER",
	}, rows)
}

func (p *printer) result(res *recommend.Result) error {
	if p.format == outputJSON {
		return p.writeJSON(res)
	}
	if !res.Found() {
		_, err := fmt.Fprintf(p.w, "customer %s not found\n", res.CustomerID)
		return err
	}
	if len(res.Categories) == 0 {
		_, err := fmt.Fprintf(p.w, "no recommendations for customer %s\n", res.CustomerID)
		return err
	}

	rows := make([][]string, len(res.Categories))
	for i, c := range res.Categories {
		rows[i] = []string{strconv.Itoa(i + 1), c}
	}
	return p.table([]string{"RANK", "CATEGORY"}, rows)
}

func (p *printer) summary(clusters []recommend.ClusterMetrics) error {
	if p.format == outputJSON {
		return p.writeJSON(clusters)
	}
	rows := make([][]string, len(clusters))
	for i, m := range clusters {
		rows[i] = []string{
			strconv.Itoa(m.Cluster), strconv.Itoa(m.Customers),
			fixed2(m.MeanTenureMonths), fixed2(m.MeanOnlineSpend),
			fixed2(m.MeanOfflineSpend), fixed2(m.MeanDiscountPct),
		}
	}
	return p.table([]string{
		"CLUSTER", "CUSTOMERS", "TENURE", "ONLINE", "OFFLINE", "DISCOUNT",
	}, rows)
}

func (p *printer) clusters(model *recommend.ClusterModel, profiles []recommend.CustomerProfile) error {
	assignments := make([]assignment, len(profiles))
	for i := range profiles {
		assignments[i] = assignment{
			CustomerID:   profiles[i].CustomerID,
			Gender:       profiles[i].Gender,
			TenureMonths: profiles[i].TenureMonths,
			Cluster:      profiles[i].Cluster,
		}
	}
	if p.format == outputJSON {
		return p.writeJSON(clustersOutput{Model: model, Assignments: assignments})
	}

	rows := make([][]string, len(assignments))
	for i, as := range assignments {
		rows[i] = []string{as.CustomerID, as.Gender, num(as.TenureMonths), strconv.Itoa(as.Cluster)}
	}
	if _, err := fmt.Fprintf(p.w, "k=%d inertia=%s iterations=%d sizes=%v\n",
		model.K, num(model.Inertia), model.Iterations, model.Sizes); err != nil {
		return err
	}
	return p.table([]string{"CUSTOMER_ID", "GENDER", "TENURE", "CLUSTER"}, rows)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
