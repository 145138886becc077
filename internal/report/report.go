// Package report renders the dashboard's KPIs and filtered rows for a
// terminal.
package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/charmbracelet/lipgloss/table"

	"salesdash/internal/core"
	"salesdash/internal/format"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorMuted  = lipgloss.Color("#6F6E69")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginRight(1).
			Width(20)

	labelStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Report is one rendered view of a selection. Columns names the rows' extra
// values, shown after Month and Sales.
type Report struct {
	Title    string
	Currency string
	Selected []string
	Columns  []string
	Rows     core.SalesTable
	KPIs     core.KPISnapshot
	Dropped  int
}

// Render returns the report as styled text.
func (r Report) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	if len(r.Selected) > 0 {
		b.WriteString(labelStyle.Render("Months: " + strings.Join(r.Selected, ", ")))
	} else {
		b.WriteString(labelStyle.Render("Months: none selected"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Sales", format.Total(r.Currency, r.KPIs.TotalSales)),
		card("Average Sales", format.Average(r.Currency, r.KPIs.AverageSales)),
		card("Best Month", r.KPIs.BestMonth),
	))
	b.WriteString("\n\n")

	if r.Rows.Empty() {
		b.WriteString(labelStyle.Render("No data for the selected months"))
		b.WriteString("\n")
	} else {
		b.WriteString(rowsTable(r.Rows, r.Columns).Render())
		b.WriteString("\n")
	}

	if r.Dropped > 0 {
		b.WriteString(labelStyle.Render(humanize.Comma(int64(r.Dropped)) + " row(s) with unparseable sales were skipped"))
		b.WriteString("\n")
	}
	return b.String()
}

// WriteTo writes the rendered report to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Render())
	return int64(n), err
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func rowsTable(rows core.SalesTable, extra []string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(append([]string{"Month", "Sales"}, extra...)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return numberStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		cells := []string{r.Month, format.Sales(r.Sales)}
		for j := range extra {
			v := ""
			if j < len(r.Extra) {
				v = r.Extra[j]
			}
			cells = append(cells, v)
		}
		t.Row(cells...)
	}
	return t
}
