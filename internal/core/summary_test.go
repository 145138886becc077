package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTable() SalesTable {
	return SalesTable{
		{Month: "Jan", Sales: 1200},
		{Month: "Feb", Sales: 800},
		{Month: "Mar", Sales: 950},
		{Month: "Apr", Sales: 1200},
		{Month: "Feb", Sales: 100},
	}
}

func TestFilterSubsetInOrder(t *testing.T) {
	tbl := sampleTable()
	sel := NewSelection("Feb", "Apr")

	got := Filter(tbl, sel)

	assert.Equal(t, SalesTable{
		{Month: "Feb", Sales: 800},
		{Month: "Apr", Sales: 1200},
		{Month: "Feb", Sales: 100},
	}, got)
	for _, r := range got {
		assert.True(t, sel.Contains(r.Month))
		assert.Contains(t, tbl, r)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	sel := NewSelection("Jan", "Mar")
	once := Filter(sampleTable(), sel)
	twice := Filter(once, sel)

	assert.Equal(t, once, twice)
}

func TestFilterEmptySelection(t *testing.T) {
	got := Filter(sampleTable(), NewSelection())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterUnknownMonthsContributeNothing(t *testing.T) {
	got := Filter(sampleTable(), NewSelection("Jan", "Smarch"))

	assert.Equal(t, SalesTable{{Month: "Jan", Sales: 1200}}, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tbl := sampleTable()
	before := append(SalesTable(nil), tbl...)

	_ = Filter(tbl, NewSelection("Feb"))

	assert.Equal(t, before, tbl)
}

func TestAggregateScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   SalesTable
		want KPISnapshot
	}{
		{
			name: "two clean months",
			in:   SalesTable{{Month: "Jan", Sales: 1200}, {Month: "Feb", Sales: 800}},
			want: KPISnapshot{TotalSales: 2000, AverageSales: 1000, BestMonth: "Jan"},
		},
		{
			name: "empty table",
			in:   SalesTable{},
			want: KPISnapshot{TotalSales: 0, AverageSales: 0, BestMonth: NotApplicable},
		},
		{
			name: "nil table",
			in:   nil,
			want: KPISnapshot{BestMonth: NotApplicable},
		},
		{
			name: "tie keeps earlier month",
			in:   SalesTable{{Month: "Jan", Sales: 5}, {Month: "Feb", Sales: 9}, {Month: "Mar", Sales: 9}},
			want: KPISnapshot{TotalSales: 23, AverageSales: 7.67, BestMonth: "Feb"},
		},
		{
			name: "fractional total truncates",
			in:   SalesTable{{Month: "Jan", Sales: 1.5}, {Month: "Feb", Sales: 1.6}},
			want: KPISnapshot{TotalSales: 3, AverageSales: 1.55, BestMonth: "Feb"},
		},
		{
			name: "average rounds to two decimals",
			in:   SalesTable{{Month: "Jan", Sales: 1}, {Month: "Feb", Sales: 2}, {Month: "Mar", Sales: 2}},
			want: KPISnapshot{TotalSales: 5, AverageSales: 1.67, BestMonth: "Feb"},
		},
		{
			name: "binary value below the half rounds down",
			in:   SalesTable{{Month: "Jan", Sales: 2.675}},
			want: KPISnapshot{TotalSales: 2, AverageSales: 2.67, BestMonth: "Jan"},
		},
		{
			name: "exact half rounds to even",
			in:   SalesTable{{Month: "Jan", Sales: 0.125}},
			want: KPISnapshot{TotalSales: 0, AverageSales: 0.12, BestMonth: "Jan"},
		},
		{
			name: "one thousandth over a whole rounds down",
			in:   SalesTable{{Month: "Jan", Sales: 1.005}},
			want: KPISnapshot{TotalSales: 1, AverageSales: 1, BestMonth: "Jan"},
		},
		{
			name: "exact half of an odd digit rounds up to even",
			in:   SalesTable{{Month: "Jan", Sales: 0.375}},
			want: KPISnapshot{TotalSales: 0, AverageSales: 0.38, BestMonth: "Jan"},
		},
		{
			name: "all negative",
			in:   SalesTable{{Month: "Jan", Sales: -3}, {Month: "Feb", Sales: -1}},
			want: KPISnapshot{TotalSales: -4, AverageSales: -2, BestMonth: "Feb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.in))
		})
	}
}

func TestAggregateIsPure(t *testing.T) {
	tbl := sampleTable()

	first := Aggregate(tbl)
	second := Aggregate(tbl)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleTable(), tbl)
}

func TestScenarioEndToEnd(t *testing.T) {
	raw := Table{Records: []Record{
		{Month: "Jan", Sales: "1,200"},
		{Month: "Feb", Sales: "800"},
		{Month: "Mar", Sales: "abc"},
	}}

	normalized, _ := Normalize(raw)
	filtered := Filter(normalized, NewSelection("Jan", "Feb", "Mar"))

	assert.Equal(t, SalesTable{{Month: "Jan", Sales: 1200}, {Month: "Feb", Sales: 800}}, filtered)
	assert.Equal(t, KPISnapshot{TotalSales: 2000, AverageSales: 1000, BestMonth: "Jan"}, Aggregate(filtered))

	none := Filter(normalized, NewSelection())
	assert.Equal(t, KPISnapshot{BestMonth: NotApplicable}, Aggregate(none))
}

func TestMonthsFirstOccurrenceOrder(t *testing.T) {
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr"}, Months(sampleTable()))
	assert.Empty(t, Months(nil))
}

func TestSelectionKeyIsCanonical(t *testing.T) {
	a := NewSelection("Mar", "Jan")
	b := NewSelection("Jan", "Mar", "Jan")

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), NewSelection("Jan").Key())
	assert.NotEqual(t, NewSelection().Key(), NewSelection("").Key())
	assert.Equal(t, []string{"Jan", "Mar"}, b.Sorted())
}
