package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salesdash/internal/core"
	"salesdash/internal/dataset"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, core.SalesTable{
		{Month: "Jan", Sales: 1200},
		{Month: "Feb", Sales: 800.5},
	})
	require.NoError(t, err)

	assert.Equal(t, "Month,Sales\nJan,1200\nFeb,800.5\n", buf.String())
}

func TestWriteCSVRoundTrip(t *testing.T) {
	want := core.SalesTable{
		{Month: "Jan", Sales: 1200},
		{Month: "Feb", Sales: 800},
		{Month: "Mar", Sales: 0.1},
		{Month: "Feb", Sales: -42.75},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, want))

	tbl, err := dataset.Read(&buf)
	require.NoError(t, err)
	got, rep := core.Normalize(tbl)

	assert.Equal(t, want, got)
	assert.Zero(t, rep.Dropped)
}

func TestWriteCSVQuotesMonths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, core.SalesTable{{Month: "Jan, 2024", Sales: 5}}))

	assert.Equal(t, "Month,Sales\n\"Jan, 2024\",5\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, core.SalesTable{
		{Month: "Jan", Sales: 1200},
		{Month: "Feb", Sales: 800.5},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Month", "Sales"},
		{"Jan", "1200"},
		{"Feb", "800.5"},
	}, rows)
}

func TestWriteXLSXEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, core.SalesTable{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Month", "Sales"}}, rows)
}

func TestWriteCSVExtraColumns(t *testing.T) {
	want := core.SalesTable{
		{Month: "Jan", Sales: 1200, Extra: []string{"North", "Ann"}},
		{Month: "Feb", Sales: 800, Extra: []string{"South", "Bo"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, want, "Region", "Rep"))
	assert.Equal(t, "Month,Sales,Region,Rep\nJan,1200,North,Ann\nFeb,800,South,Bo\n", buf.String())

	tbl, err := dataset.Read(&buf)
	require.NoError(t, err)
	got, _ := core.Normalize(tbl)
	assert.Equal(t, []string{"Region", "Rep"}, tbl.Extra)
	assert.Equal(t, want, got)
}

func TestWriteXLSXExtraColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, core.SalesTable{
		{Month: "Jan", Sales: 1200, Extra: []string{"North"}},
	}, "Region"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Month", "Sales", "Region"},
		{"Jan", "1200", "North"},
	}, rows)
}
