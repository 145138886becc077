package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSales(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1200", 1200, true},
		{"1,200", 1200, true},
		{" 1,234,567.5 ", 1234567.5, true},
		{"800", 800, true},
		{"0", 0, true},
		{"-15.25", -15.25, true},
		{"\t42\n", 42, true},
		{"abc", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-inf", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseSales(tc.in)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.out, got, "input %q", tc.in)
		} else {
			assert.ErrorIs(t, err, ErrInvalidSales, "input %q", tc.in)
		}
	}
}

func TestNormalizeDropsUnparseableRows(t *testing.T) {
	in := Table{Records: []Record{
		{Month: "Jan", Sales: "1,200"},
		{Month: "Feb", Sales: "800"},
		{Month: "Mar", Sales: "abc"},
	}}

	got, rep := Normalize(in)

	assert.Equal(t, SalesTable{{Month: "Jan", Sales: 1200}, {Month: "Feb", Sales: 800}}, got)
	assert.Equal(t, NormalizeReport{Input: 3, Kept: 2, Dropped: 1}, rep)
}

func TestNormalizeCarriesExtraValues(t *testing.T) {
	in := Table{
		Extra: []string{"Region"},
		Records: []Record{
			{Month: "Jan", Sales: "5", Extra: []string{"North"}},
			{Month: "Feb", Sales: "", Extra: []string{"South"}},
		},
	}

	got, _ := Normalize(in)

	assert.Equal(t, SalesTable{{Month: "Jan", Sales: 5, Extra: []string{"North"}}}, got)
	assert.Equal(t, got, Filter(got, NewSelection("Jan")))
}

func TestNormalizeKeepsOrderAcrossGaps(t *testing.T) {
	in := Table{Records: []Record{
		{Month: "Jan", Sales: "x"},
		{Month: "Feb", Sales: "2"},
		{Month: "Mar", Sales: ""},
		{Month: "Apr", Sales: "4"},
		{Month: "May", Sales: "5"},
	}}

	got, _ := Normalize(in)

	assert.Equal(t, []string{"Feb", "Apr", "May"}, got.Months())
	assert.Equal(t, []float64{2, 4, 5}, got.Values())
}

func TestNormalizeNumericPassThrough(t *testing.T) {
	in := Table{
		Records: []Record{
			{Month: "Jan", Sales: "ignored"},
			{Month: "Feb", Sales: "ignored"},
			{Month: "Mar", Sales: "ignored"},
		},
		Numeric: []float64{10.5, math.NaN(), 7},
	}

	got, rep := Normalize(in)

	assert.Equal(t, SalesTable{{Month: "Jan", Sales: 10.5}, {Month: "Mar", Sales: 7}}, got)
	assert.Equal(t, 1, rep.Dropped)
}

func TestNormalizeResultIsAlwaysFinite(t *testing.T) {
	in := Table{Records: []Record{
		{Month: "a", Sales: "1e400"},
		{Month: "b", Sales: "-1e400"},
		{Month: "c", Sales: "nan"},
		{Month: "d", Sales: "1e3"},
		{Month: "e", Sales: "--1"},
	}}

	got, _ := Normalize(in)

	for _, r := range got {
		assert.False(t, math.IsNaN(r.Sales) || math.IsInf(r.Sales, 0), "row %+v", r)
	}
	assert.Equal(t, SalesTable{{Month: "d", Sales: 1000}}, got)
}

func TestNormalizeEmptyTable(t *testing.T) {
	got, rep := Normalize(Table{})

	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, NormalizeReport{}, rep)
}
