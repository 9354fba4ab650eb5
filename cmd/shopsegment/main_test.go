// Shopsegment - Customer Segmentation and Category Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsegment

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopsegment/internal/logging"
	"github.com/tomtom215/shopsegment/internal/recommend"
)

const testCSV = `CustomerID,Gender,Tenure_Months,Online_Spend,Offline_Spend,Discount_pct,Product_Category
1,F,10,100,50,5,A
1,F,10,100,50,5,A
2,F,11,105,52,5,A
3,M,50,10,500,1,B
`

// writeDataset creates a CSV dataset in a temporary directory.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestIDs(t *testing.T) {
	data := writeDataset(t)

	stdout, stderr, err := execute(t, "--data", data, "--k", "2", "ids")
	if err != nil {
		t.Fatalf("ids error = %v\n%s", err, stderr)
	}

	var ids []string
	if err := json.Unmarshal([]byte(stdout), &ids); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if !reflect.DeepEqual(ids, []string{"1", "2", "3"}) {
		t.Errorf("ids = %v, want [1 2 3]", ids)
	}

	if !strings.Contains(stderr, "Session ready") || !strings.Contains(stderr, `"session_id"`) {
		t.Errorf("stderr missing session log: %s", stderr)
	}
}

func TestIDs_DirectoryDiscovery(t *testing.T) {
	data := writeDataset(t)

	stdout, _, err := execute(t, "--data", filepath.Dir(data), "--k", "1", "--output", "table", "ids")
	if err != nil {
		t.Fatalf("ids error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 || strings.TrimSpace(lines[0]) != "CUSTOMER_ID" {
		t.Errorf("table output = %q", stdout)
	}
}

func TestRecommend(t *testing.T) {
	data := writeDataset(t)

	stdout, _, err := execute(t, "--data", data, "--k", "2", "recommend", "1", "--top", "1")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}

	var res recommend.Result
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if res.Status != recommend.StatusFound {
		t.Errorf("Status = %v, want found", res.Status)
	}
	if !reflect.DeepEqual(res.Categories, []string{"A"}) {
		t.Errorf("Categories = %v, want [A]", res.Categories)
	}
	if len(res.Neighbors) != 1 || res.Neighbors[0].CustomerID != "2" {
		t.Errorf("Neighbors = %+v, want customer 2", res.Neighbors)
	}
}

func TestRecommend_Table(t *testing.T) {
	data := writeDataset(t)

	stdout, _, err := execute(t, "--data", data, "--k", "2", "-o", "table", "recommend", "1")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	if !strings.Contains(stdout, "RANK") || !strings.Contains(stdout, "A") {
		t.Errorf("table output = %q", stdout)
	}

	stdout, _, err = execute(t, "--data", data, "--k", "2", "-o", "table", "recommend", "3")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	if !strings.Contains(stdout, "no recommendations for customer 3") {
		t.Errorf("table output = %q", stdout)
	}
}

func TestRecommend_UnknownCustomer(t *testing.T) {
	data := writeDataset(t)

	stdout, _, err := execute(t, "--data", data, "--k", "2", "recommend", "nobody")
	if err != nil {
		t.Fatalf("unknown customer should not fail: %v", err)
	}
	if !strings.Contains(stdout, `"status": "not_found"`) {
		t.Errorf("output = %s", stdout)
	}
}

func TestRecommend_InvalidTop(t *testing.T) {
	data := writeDataset(t)

	if _, _, err := execute(t, "--data", data, "--k", "2", "recommend", "1", "--top", "-2"); err == nil {
		t.Error("negative --top should fail")
	}
}

func TestProfile(t *testing.T) {
	data := writeDataset(t)

	stdout, _, err := execute(t, "--data", data, "--k", "2", "profile", "1")
	if err != nil {
		t.Fatalf("profile error = %v", err)
	}

	var profiles []recommend.CustomerProfile
	if err := json.Unmarshal([]byte(stdout), &profiles); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if len(profiles) != 1 || profiles[0].Transactions != 2 || profiles[0].DominantCategory != "A" {
		t.Errorf("profiles = %+v", profiles)
	}

	_, _, err = execute(t, "--data", data, "--k", "2", "profile", "404")
	if !errors.Is(err, errCustomerNotFound) {
		t.Errorf("profile 404 error = %v, want errCustomerNotFound", err)
	}
}

func TestSummary(t *testing.T) {
	data := writeDataset(t)

	stdout, _, err := execute(t, "--data", data, "--k", "2", "summary")
	if err != nil {
		t.Fatalf("summary error = %v", err)
	}

	var metrics []recommend.ClusterMetrics
	if err := json.Unmarshal([]byte(stdout), &metrics); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if len(metrics) != 2 || metrics[0].Cluster != 0 || metrics[0].Customers != 2 {
		t.Errorf("summary = %+v", metrics)
	}
	if metrics[0].MeanTenureMonths != 10.5 {
		t.Errorf("MeanTenureMonths = %v, want 10.5", metrics[0].MeanTenureMonths)
	}

	stdout, _, err = execute(t, "--data", data, "--k", "2", "-o", "table", "summary")
	if err != nil {
		t.Fatalf("summary error = %v", err)
	}
	if !strings.Contains(stdout, "CLUSTER") || !strings.Contains(stdout, "10.50") {
		t.Errorf("table output = %q", stdout)
	}
}

func TestClusters(t *testing.T) {
	data := writeDataset(t)

	stdout, _, err := execute(t, "--data", data, "--k", "2", "--seed", "7", "clusters")
	if err != nil {
		t.Fatalf("clusters error = %v", err)
	}

	var out clustersOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if out.Model == nil || out.Model.K != 2 || out.Model.Seed != 7 {
		t.Fatalf("model = %+v", out.Model)
	}
	if len(out.Assignments) != 3 {
		t.Fatalf("len(assignments) = %d, want 3", len(out.Assignments))
	}
	if out.Assignments[0].Cluster != out.Assignments[1].Cluster || out.Assignments[0].Cluster == out.Assignments[2].Cluster {
		t.Errorf("assignments = %+v", out.Assignments)
	}
}

func TestMetricsFile(t *testing.T) {
	data := writeDataset(t)
	metricsPath := filepath.Join(t.TempDir(), "shopsegment.prom")

	if _, _, err := execute(t, "--data", data, "--k", "2", "--metrics-file", metricsPath, "recommend", "1"); err != nil {
		t.Fatalf("recommend error = %v", err)
	}

	content, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	for _, name := range []string{"shopsegment_profiles", "shopsegment_recommend_requests_total"} {
		if !strings.Contains(string(content), name) {
			t.Errorf("metrics file missing %s", name)
		}
	}
}

func TestErrors(t *testing.T) {
	data := writeDataset(t)

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "missing dataset",
			args: []string{"--data", filepath.Join(t.TempDir(), "missing.csv"), "ids"},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, recommend.ErrDataSource) {
					t.Errorf("error = %v, want ErrDataSource", err)
				}
			},
		},
		{
			name: "too many clusters",
			args: []string{"--data", data, "--k", "9", "ids"},
			check: func(t *testing.T, err error) {
				var countErr *recommend.InvalidClusterCountError
				if !errors.As(err, &countErr) {
					t.Fatalf("error = %v, want *InvalidClusterCountError", err)
				}
				if countErr.Requested != 9 || countErr.Available != 3 {
					t.Errorf("error = %+v", countErr)
				}
			},
		},
		{
			name: "zero clusters",
			args: []string{"--data", data, "--k", "0", "ids"},
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), "invalid options") {
					t.Errorf("error = %v, want invalid options", err)
				}
			},
		},
		{
			name: "unknown output format",
			args: []string{"--data", data, "--output", "xml", "ids"},
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), "unknown output format") {
					t.Errorf("error = %v", err)
				}
			},
		},
		{
			name: "missing argument",
			args: []string{"--data", data, "profile"},
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), "arg") {
					t.Errorf("error = %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	data := writeDataset(t)
	cfgPath := filepath.Join(t.TempDir(), "shopsegment.yaml")
	content := "data:\n  path: " + data + "\ncluster:\n  k: 2\nrecommend:\n  top_n: 1\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_LEVEL", "warn")

	stdout, stderr, err := execute(t, "--config", cfgPath, "recommend", "1")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}

	var res recommend.Result
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if len(res.Categories) != 1 {
		t.Errorf("top_n from file not applied: %v", res.Categories)
	}
	if strings.Contains(stderr, "Session ready") {
		t.Errorf("info log written at warn level: %s", stderr)
	}
}
