// Package export writes a filtered sales table as a downloadable file.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"salesdash/internal/core"
)

const (
	CSVFilename    = "filtered_sales.csv"
	CSVContentType = "text/csv"

	XLSXFilename    = "filtered_sales.xlsx"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Sales"
)

var header = []string{"Month", "Sales"}

// FormatSales renders a Sales value the way it is written to exported files:
// the shortest decimal representation that parses back to the same float.
func FormatSales(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Frame converts a table into a dataframe with Month and Sales first, then
// one text column per name in extra, filled from Row.Extra.
func Frame(t core.SalesTable, extra ...string) dataframe.DataFrame {
	sales := make([]string, len(t))
	for i, r := range t {
		sales[i] = FormatSales(r.Sales)
	}
	cols := []series.Series{
		series.New(t.Months(), series.String, header[0]),
		series.New(sales, series.String, header[1]),
	}
	for j, name := range extra {
		cols = append(cols, series.New(extraColumn(t, j), series.String, name))
	}
	return dataframe.New(cols...)
}

// WriteCSV writes t as UTF-8 CSV with a Month,Sales header, followed by the
// extra column names, and one line per row in table order.
func WriteCSV(w io.Writer, t core.SalesTable, extra ...string) error {
	if err := Frame(t, extra...).WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func extraColumn(t core.SalesTable, j int) []string {
	out := make([]string, len(t))
	for i, r := range t {
		if j < len(r.Extra) {
			out[i] = r.Extra[j]
		}
	}
	return out
}

// WriteXLSX writes t as a single-sheet Excel workbook with the same columns
// as WriteCSV. Sales cells are stored as numbers.
func WriteXLSX(w io.Writer, t core.SalesTable, extra ...string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	names := append(append([]string{}, header...), extra...)
	if err := f.SetSheetRow(sheetName, "A1", &names); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(names), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range t {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Month, r.Sales}
		for j := range extra {
			v := ""
			if j < len(r.Extra) {
				v = r.Extra[j]
			}
			values = append(values, v)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
