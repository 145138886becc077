package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = "Month,Sales\nJan,\"1,200\"\nFeb,800\nMar,abc\n"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sales_data.csv"), []byte(salesCSV), 0o644))

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportAllMonths(t *testing.T) {
	out, err := runCLI(t, "report")
	require.NoError(t, err)

	assert.Contains(t, out, "Months: Jan, Feb")
	assert.Contains(t, out, "₹2,000")
	assert.Contains(t, out, "₹1,000.00")
	assert.Contains(t, out, "1 row(s) with unparseable sales were skipped")
}

func TestReportSelectedMonthAndExport(t *testing.T) {
	out, err := runCLI(t, "report", "--month", "Feb", "--export", "feb.csv")
	require.NoError(t, err)

	assert.Contains(t, out, "Months: Feb")
	assert.Contains(t, out, "₹800.00")
	assert.Contains(t, out, "Wrote 1 row(s) to feb.csv")

	data, err := os.ReadFile("feb.csv")
	require.NoError(t, err)
	assert.Equal(t, "Month,Sales\nFeb,800\n", string(data))
}

func TestReportUnknownMonth(t *testing.T) {
	_, err := runCLI(t, "report", "-m", "Mar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown month "Mar"`)
}

func TestReportMissingDataFile(t *testing.T) {
	_, err := runCLI(t, "--data", "nope.csv", "report")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalidLogLevelFlag(t *testing.T) {
	_, err := runCLI(t, "--log-level", "loud", "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
