// Package dataset loads the sales CSV file into memory.
//
// The file is read once at startup. Its header must name at least the Month
// and Sales columns; other columns are carried along as text. Rows shorter
// than the header are padded with empty cells. Column types are detected
// with a gota dataframe so that an already numeric Sales column skips text
// cleaning during normalization.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"salesdash/internal/core"
)

// Required column names.
const (
	ColumnMonth = "Month"
	ColumnSales = "Sales"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoHeader      = errors.New("no header row")
)

// LoadError reports that the input could not be read as a sales table. It
// is fatal: the dashboard does not start without a dataset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Dataset is the immutable, normalized input shared by every request.
type Dataset struct {
	Source   string
	Table    core.Table
	Rows     core.SalesTable
	Months   []string
	Report   core.NormalizeReport
	LoadedAt time.Time
}

// New normalizes t and wraps the result as a Dataset.
func New(source string, t core.Table) *Dataset {
	rows, rep := core.Normalize(t)
	return &Dataset{
		Source:   source,
		Table:    t,
		Rows:     rows,
		Months:   core.Months(rows),
		Report:   rep,
		LoadedAt: time.Now(),
	}
}

// Open loads and normalizes the CSV file at path.
func Open(path string) (*Dataset, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	return New(path, t), nil
}

// Load reads the CSV file at path. Every failure is returned as *LoadError.
func Load(path string) (core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Table{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return core.Table{}, &LoadError{Path: path, Err: err}
	}
	return t, nil
}

// Read parses CSV content with a header row into a Table.
func Read(r io.Reader) (core.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return core.Table{}, ErrNoHeader
	}
	if err != nil {
		return core.Table{}, fmt.Errorf("parse csv: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	monthIdx := indexOf(header, ColumnMonth)
	if monthIdx == -1 {
		return core.Table{}, fmt.Errorf("%w: %s (got %v)", ErrMissingColumn, ColumnMonth, header)
	}
	salesIdx := indexOf(header, ColumnSales)
	if salesIdx == -1 {
		return core.Table{}, fmt.Errorf("%w: %s (got %v)", ErrMissingColumn, ColumnSales, header)
	}

	t := core.Table{Records: []core.Record{}}
	var extraIdx []int
	for i, name := range header {
		if i != monthIdx && i != salesIdx {
			extraIdx = append(extraIdx, i)
			t.Extra = append(t.Extra, name)
		}
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.Table{}, fmt.Errorf("parse csv: %w", err)
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return core.Table{}, fmt.Errorf("parse csv: record on line %d: %w", line, csv.ErrFieldCount)
		}

		rec := core.Record{Month: cell(row, monthIdx), Sales: cell(row, salesIdx)}
		if len(extraIdx) > 0 {
			rec.Extra = make([]string, len(extraIdx))
			for j, idx := range extraIdx {
				rec.Extra[j] = cell(row, idx)
			}
		}
		t.Records = append(t.Records, rec)
	}
	if len(t.Records) == 0 {
		return t, nil
	}

	numeric, err := detectNumericSales(t.Records)
	if err != nil {
		return core.Table{}, err
	}
	t.Numeric = numeric
	return t, nil
}

// cell returns row[i], or "" when the row is too short to have it.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// detectNumericSales returns the Sales column as numbers when every
// non-missing cell is already numeric, and nil when the column holds text.
func detectNumericSales(recs []core.Record) ([]float64, error) {
	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, []string{ColumnMonth, ColumnSales})
	for _, r := range recs {
		rows = append(rows, []string{r.Month, r.Sales})
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(map[string]series.Type{ColumnMonth: series.String}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("build dataframe: %w", df.Err)
	}

	col := df.Col(ColumnSales)
	switch col.Type() {
	case series.Int, series.Float:
		return col.Float(), nil
	default:
		return nil, nil
	}
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
