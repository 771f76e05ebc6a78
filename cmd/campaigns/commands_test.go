package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/spreadsheet"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeExample(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	_, err := run(t, "export", "--example", path)
	require.NoError(t, err)
	return path
}

func TestExport_ExampleAndConversion(t *testing.T) {
	xlsxPath := writeExample(t, "campanhas.xlsx")
	csvPath := filepath.Join(filepath.Dir(xlsxPath), "campanhas.csv")

	_, err := run(t, "export", xlsxPath, csvPath)
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	table, err := spreadsheet.Import(csvPath, f)
	require.NoError(t, err)
	assert.Equal(t, domain.ExampleTable(), table)
}

func TestSummary(t *testing.T) {
	path := writeExample(t, "campanhas.csv")

	out, err := run(t, "summary", path, "--platform", "Google Ads")
	require.NoError(t, err)

	var summary domain.SummaryStats
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Rows)
	assert.InDelta(t, 15000.0, summary.TotalInvestment.Value.Value, 1e-9)
}

func TestRecompute(t *testing.T) {
	path := writeExample(t, "campanhas.csv")
	out := filepath.Join(filepath.Dir(path), "recalculada.xlsx")

	_, err := run(t, "recompute", path, "--out", out)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	table, err := spreadsheet.Import(out, f)
	require.NoError(t, err)
	require.Len(t, table.Records, 5)
	ctr, ok := table.Records[0].CTR.Float()
	require.True(t, ok)
	assert.InDelta(t, 2.4, ctr, 1e-9)
}

func TestDescribeAndCorrelate(t *testing.T) {
	path := writeExample(t, "campanhas.csv")

	out, err := run(t, "describe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Investimento")

	out, err = run(t, "correlate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "columns")
}

func TestUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campanhas.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := run(t, "describe", path)
	assert.ErrorIs(t, err, spreadsheet.ErrUnsupportedFormat)
}
