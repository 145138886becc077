package core

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// NotApplicable is reported as the best month when there is nothing to rank.
const NotApplicable = "N/A"

type (
	// Record is one raw input row. Sales is kept as read from the file and
	// may still contain grouping separators or surrounding whitespace.
	Record struct {
		Month string
		Sales string
		// Extra holds the values of the table's other columns, in the order
		// of Table.Extra. Nil when the table has no other columns.
		Extra []string
	}

	// Table is the raw input in file order.
	Table struct {
		Records []Record
		// Extra names the columns besides Month and Sales, in file order.
		Extra []string
		// Numeric holds the already-parsed Sales values when the source
		// column was numeric; nil otherwise. When set it has one entry per
		// record.
		Numeric []float64
	}

	// Row is a cleaned record whose Sales value is always finite.
	Row struct {
		Month string   `json:"month"`
		Sales float64  `json:"sales"`
		Extra []string `json:"extra,omitempty"`
	}

	// SalesTable is an ordered list of cleaned rows. Both the normalized
	// dataset and every filtered view of it use this type. Values are shared
	// between requests and must not be mutated in place.
	SalesTable []Row

	// Selection is the set of months chosen for display.
	Selection map[string]struct{}

	// KPISnapshot holds the summary statistics of a filtered table.
	KPISnapshot struct {
		TotalSales   int64   `json:"total_sales"`
		AverageSales float64 `json:"average_sales"`
		BestMonth    string  `json:"best_month"`
	}

	// NormalizeReport counts what normalization kept and discarded.
	NormalizeReport struct {
		Input   int `json:"input"`
		Kept    int `json:"kept"`
		Dropped int `json:"dropped"`
	}
)

// ErrInvalidSales is returned by ParseSales for a value that is not a finite
// number.
var ErrInvalidSales = errors.New("invalid sales value")

// NewSelection builds a selection from the given months.
func NewSelection(months ...string) Selection {
	s := make(Selection, len(months))
	for _, m := range months {
		s[m] = struct{}{}
	}
	return s
}

// Add puts a month into the selection.
func (s Selection) Add(month string) {
	s[month] = struct{}{}
}

// Contains reports whether month is selected.
func (s Selection) Contains(month string) bool {
	_, ok := s[month]
	return ok
}

// Len returns the number of selected months.
func (s Selection) Len() int {
	return len(s)
}

// Sorted returns the selected months in lexical order.
func (s Selection) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Key returns a canonical string identifying the selection, suitable as a
// cache key. Two selections with the same members share a key.
func (s Selection) Key() string {
	months := s.Sorted()
	for i, m := range months {
		months[i] = strconv.Quote(m)
	}
	return "sel:" + strings.Join(months, ",")
}

// Empty reports whether the table has no rows.
func (t SalesTable) Empty() bool {
	return len(t) == 0
}

// Months returns the Month column of the table in row order.
func (t SalesTable) Months() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Month
	}
	return out
}

// Values returns the Sales column of the table in row order.
func (t SalesTable) Values() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.Sales
	}
	return out
}
