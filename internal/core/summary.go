package core

import "strconv"

// Filter returns the rows of t whose Month is in sel, in their original
// order. An empty selection yields an empty table. The input is not
// modified.
func Filter(t SalesTable, sel Selection) SalesTable {
	out := make(SalesTable, 0, len(t))
	if sel.Len() == 0 {
		return out
	}
	for _, r := range t {
		if sel.Contains(r.Month) {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate computes the KPI snapshot of a table.
//
// TotalSales is the sum truncated toward zero. AverageSales is the mean
// rounded to two decimals on its exact binary value, ties to even, so 2.675
// (stored just below) gives 2.67 and 0.125 gives 0.12. BestMonth is the month of
// the first row holding the maximum Sales value. An empty table gives
// {0, 0, "N/A"}.
func Aggregate(t SalesTable) KPISnapshot {
	if len(t) == 0 {
		return KPISnapshot{BestMonth: NotApplicable}
	}

	var sum float64
	best := 0
	for i, r := range t {
		sum += r.Sales
		if r.Sales > t[best].Sales {
			best = i
		}
	}

	mean := sum / float64(len(t))
	avg, _ := strconv.ParseFloat(strconv.FormatFloat(mean, 'f', 2, 64), 64)
	return KPISnapshot{
		TotalSales:   int64(sum),
		AverageSales: avg,
		BestMonth:    t[best].Month,
	}
}

// Months returns the distinct months of t in first-occurrence order.
func Months(t SalesTable) []string {
	seen := make(map[string]struct{}, len(t))
	out := make([]string, 0, len(t))
	for _, r := range t {
		if _, ok := seen[r.Month]; ok {
			continue
		}
		seen[r.Month] = struct{}{}
		out = append(out, r.Month)
	}
	return out
}
