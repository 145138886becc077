package http

import (
	"bytes"
	"net/http"

	"salesdash/internal/charts"
	"salesdash/internal/export"
	"salesdash/internal/format"
	"salesdash/internal/log"
)

type monthOption struct {
	Name     string
	Selected bool
}

type rowView struct {
	Month string
	Sales string
	Extra []string
}

type dashboardView struct {
	HasLogo bool
	Months  []monthOption

	TotalSales   string
	AverageSales string
	BestMonth    string

	ExtraColumns []string
	Rows         []rowView
	Dropped      int
	EmptyMessage string

	LineChartURL string
	BarChartURL  string
	CSVURL       string
	XLSXURL      string
}

// handleDashboard renders the main dashboard page for the selected months.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, snap := s.snapshotFor(r)
	query := selectionQuery(sel, s.data.Months)
	symbol := s.cfg.CurrencySymbol

	view := dashboardView{
		HasLogo:      s.hasLogo,
		Months:       make([]monthOption, len(s.data.Months)),
		TotalSales:   format.Total(symbol, snap.KPIs.TotalSales),
		AverageSales: format.Average(symbol, snap.KPIs.AverageSales),
		BestMonth:    snap.KPIs.BestMonth,
		ExtraColumns: s.data.Table.Extra,
		Rows:         make([]rowView, len(snap.Rows)),
		Dropped:      s.data.Report.Dropped,
		EmptyMessage: charts.EmptyMessage,
		LineChartURL: withQuery("/charts/line.svg", query),
		BarChartURL:  withQuery("/charts/bar.svg", query),
		CSVURL:       withQuery("/export/"+export.CSVFilename, query),
		XLSXURL:      withQuery("/export/"+export.XLSXFilename, query),
	}
	for i, m := range s.data.Months {
		view.Months[i] = monthOption{Name: m, Selected: sel.Contains(m)}
	}
	for i, row := range snap.Rows {
		view.Rows[i] = rowView{Month: row.Month, Sales: format.Sales(row.Sales), Extra: row.Extra}
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard_page", view); err != nil {
		s.fail(w, r, "Dashboard template execution failed", err, log.ComponentTemplate, log.OpRender)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
