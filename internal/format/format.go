// Package format renders sales figures for display.
package format

import (
	"math"

	"github.com/dustin/go-humanize"
)

// DefaultCurrency is prefixed to every money value unless configured
// otherwise.
const DefaultCurrency = "₹"

// Total formats a whole-unit total with grouping separators. The sign of a
// negative total follows the symbol, e.g. 1234567 -> "₹1,234,567",
// -4500 -> "₹-4,500".
func Total(symbol string, n int64) string {
	return symbol + humanize.Comma(n)
}

// Average formats a value with grouping separators and exactly two
// decimals, e.g. 1000 -> "₹1,000.00", -2 -> "₹-2.00".
func Average(symbol string, v float64) string {
	if v < 0 {
		return symbol + "-" + humanize.FormatFloat("#,###.##", -v)
	}
	return symbol + humanize.FormatFloat("#,###.##", v)
}

// Sales formats a table cell: grouped, without trailing zeros.
// e.g. 1200 -> "1,200", 800.5 -> "800.5"
func Sales(v float64) string {
	return humanize.Commaf(v)
}

// Axis formats a chart tick label to at most two decimals.
func Axis(v float64) string {
	return humanize.Commaf(math.Round(v*100) / 100)
}
