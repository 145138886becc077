package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"

	"salesdash/internal/charts"
	"salesdash/internal/core"
	"salesdash/internal/export"
	"salesdash/internal/format"
	"salesdash/internal/log"
)

type chartRenderer func(io.Writer, core.SalesTable, charts.Options) error

func (s *Server) handleChart(draw chartRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, snap := s.snapshotFor(r)

		var buf bytes.Buffer
		if err := draw(&buf, snap.Rows, charts.Options{}); err != nil {
			s.fail(w, r, "Chart render failed", err, log.ComponentChart, log.OpRender)
			return
		}
		w.Header().Set("Content-Type", charts.ContentType)
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "csv", export.CSVFilename, export.CSVContentType, export.WriteCSV)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "xlsx", export.XLSXFilename, export.XLSXContentType, export.WriteXLSX)
}

func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, kind, filename, contentType string,
	write func(io.Writer, core.SalesTable, ...string) error) {
	_, snap := s.snapshotFor(r)

	var buf bytes.Buffer
	if err := write(&buf, snap.Rows, s.data.Table.Extra...); err != nil {
		s.fail(w, r, "Export failed", err, log.ComponentExport, log.OpExport)
		return
	}

	s.metrics.Export(kind)
	log.FromContext(r.Context()).WithComponent(log.ComponentExport).InfoContext(r.Context(),
		"Filtered data exported", log.FieldFormat, kind, log.FieldCount, len(snap.Rows))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = buf.WriteTo(w)
}

type kpisResponse struct {
	SelectedMonths []string `json:"selected_months"`
	core.KPISnapshot
	Display kpiDisplay `json:"display"`
}

type kpiDisplay struct {
	TotalSales   string `json:"total_sales"`
	AverageSales string `json:"average_sales"`
}

type rowsResponse struct {
	SelectedMonths []string        `json:"selected_months"`
	ExtraColumns   []string        `json:"extra_columns,omitempty"`
	Count          int             `json:"count"`
	Rows           core.SalesTable `json:"rows"`
}

type monthsResponse struct {
	Months []string             `json:"months"`
	Report core.NormalizeReport `json:"rows"`
}

func (s *Server) handleAPIKPIs(w http.ResponseWriter, r *http.Request) {
	sel, snap := s.snapshotFor(r)
	render.JSON(w, r, kpisResponse{
		SelectedMonths: selectedInOrder(sel, s.data.Months),
		KPISnapshot:    snap.KPIs,
		Display: kpiDisplay{
			TotalSales:   format.Total(s.cfg.CurrencySymbol, snap.KPIs.TotalSales),
			AverageSales: format.Average(s.cfg.CurrencySymbol, snap.KPIs.AverageSales),
		},
	})
}

func (s *Server) handleAPIRows(w http.ResponseWriter, r *http.Request) {
	sel, snap := s.snapshotFor(r)
	render.JSON(w, r, rowsResponse{
		SelectedMonths: selectedInOrder(sel, s.data.Months),
		ExtraColumns:   s.data.Table.Extra,
		Count:          len(snap.Rows),
		Rows:           snap.Rows,
	})
}

func (s *Server) handleAPIMonths(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, monthsResponse{Months: s.data.Months, Report: s.data.Report})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once a dataset is loaded, which NewServer
// guarantees; the body says how much of it survived normalization.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":    "ready",
		"data_file": s.data.Source,
		"rows":      s.data.Report.Kept,
		"months":    len(s.data.Months),
		"loaded_at": s.data.LoadedAt,
	})
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	if !s.hasLogo {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.cfg.LogoFile)
}
