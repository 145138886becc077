// Package core holds the pure data pipeline of the dashboard: sales value
// parsing, normalization, month filtering and KPI aggregation.
//
// Nothing in this package performs I/O or keeps state between calls.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseSales converts a raw Sales cell into a number.
//
// Comma grouping separators are removed and surrounding whitespace is
// trimmed before parsing. Values that do not parse, or that parse to NaN or
// an infinity, are rejected with ErrInvalidSales.
//
// Examples:
//
//	ParseSales("1,200")    -> 1200, nil
//	ParseSales("  800 ")   -> 800, nil
//	ParseSales("12.5")     -> 12.5, nil
//	ParseSales("abc")      -> 0, ErrInvalidSales
func ParseSales(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, ErrInvalidSales
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidSales
	}
	if !finite(v) {
		return 0, ErrInvalidSales
	}
	return v, nil
}

// Normalize turns a raw table into a SalesTable with numeric Sales values.
//
// Rows whose Sales value cannot be parsed are dropped silently; the report
// only counts them. The remaining rows keep their relative order. When the
// table already carries numeric values they are used as they are, except
// that non-finite values are still dropped.
func Normalize(t Table) (SalesTable, NormalizeReport) {
	rep := NormalizeReport{Input: len(t.Records)}
	out := make(SalesTable, 0, len(t.Records))

	numeric := len(t.Numeric) == len(t.Records) && t.Numeric != nil
	for i, rec := range t.Records {
		var (
			v   float64
			err error
		)
		if numeric {
			v = t.Numeric[i]
			if !finite(v) {
				err = ErrInvalidSales
			}
		} else {
			v, err = ParseSales(rec.Sales)
		}
		if err != nil {
			rep.Dropped++
			continue
		}
		out = append(out, Row{Month: rec.Month, Sales: v, Extra: rec.Extra})
	}
	rep.Kept = len(out)
	return out, rep
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
