// Package http serves the sales dashboard: the HTML page, its chart images,
// filtered-data downloads and a small JSON API.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salesdash/internal/cache"
	"salesdash/internal/charts"
	"salesdash/internal/config"
	"salesdash/internal/core"
	"salesdash/internal/dataset"
	"salesdash/internal/log"
	"salesdash/internal/metrics"
	"salesdash/internal/middleware/ratelimit"
	"salesdash/internal/middleware/security"
	"salesdash/internal/middleware/trace"
	appweb "salesdash/web"
)

const limiterCleanupInterval = time.Minute

type Server struct {
	http.Server

	cfg       *config.Config
	data      *dataset.Dataset
	logger    *log.Logger
	sl        *log.StructuredLogger
	metrics   *metrics.Metrics
	templates *template.Template
	hasLogo   bool

	snapshots    *cache.LRU[snapshot]
	cacheManager *cache.Manager
	limiter      *ratelimit.Limiter
	clientIP     *security.ClientIP
}

// snapshot is everything derived from one month selection.
type snapshot struct {
	Rows core.SalesTable
	KPIs core.KPISnapshot
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server. The dataset must already be loaded.
func NewServer(cfg *config.Config, data *dataset.Dataset, logger *log.Logger, m *metrics.Metrics) (*Server, error) {
	templates, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	clientIP, err := security.NewClientIP()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Server: http.Server{
			Addr:           cfg.Addr(),
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			IdleTimeout:    cfg.IdleTimeout,
			MaxHeaderBytes: 1 << 16,
		},
		cfg:       cfg,
		data:      data,
		logger:    logger.WithComponent(log.ComponentHTTP),
		sl:        log.NewStructuredLogger(logger),
		metrics:   m,
		templates: templates,
		hasLogo:   fileExists(cfg.LogoFile),
		snapshots: cache.NewLRU[snapshot](cfg.CacheSize, cfg.CacheTTL,
			cache.WithObserver(m.CacheHit, m.CacheMiss)),
		cacheManager: cache.NewManager(logger),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}),
		clientIP: clientIP,
	}
	s.cacheManager.Register(s.snapshots)
	s.Handler = s.routes(static)
	return s, nil
}

func (s *Server) routes(static fs.FS) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(trace.NewMiddleware(s.logger, s.clientIP.Extract).Middleware)
	r.Use(s.metrics.Middleware)
	r.Use(security.NewHeaders(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.With(security.CacheControl("public, max-age=3600")).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/logo.png", s.handleLogo)

	r.Group(func(r chi.Router) {
		r.Use(s.limiter.Middleware(s.clientIP.Extract, s.onRateLimited))

		r.Get("/", s.handleDashboard)

		r.Route("/charts", func(r chi.Router) {
			r.Use(security.CacheControl("no-cache"))
			r.Get("/line.svg", s.handleChart(charts.Line))
			r.Get("/bar.svg", s.handleChart(charts.Bar))
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(security.CacheControl("no-store"))
			r.Get("/filtered_sales.csv", s.handleExportCSV)
			r.Get("/filtered_sales.xlsx", s.handleExportXLSX)
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/kpis", s.handleAPIKPIs)
			r.Get("/rows", s.handleAPIRows)
			r.Get("/months", s.handleAPIMonths)
		})
	})

	return r
}

// Maintain runs the periodic cache and rate limiter cleanup until ctx is
// done.
func (s *Server) Maintain(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.cacheManager.Run(ctx, s.cfg.CacheTTL)
	}()
	go func() {
		defer wg.Done()
		s.limiter.Run(ctx, limiterCleanupInterval)
	}()
	wg.Wait()
}

// snapshotFor filters and aggregates the dataset for the request's month
// selection, reusing a cached result when the same selection was seen
// recently.
func (s *Server) snapshotFor(r *http.Request) (core.Selection, snapshot) {
	sel := parseSelection(r, s.data.Months)
	snap, _ := s.snapshots.GetOrCompute(sel.Key(), func() (snapshot, error) {
		rows := core.Filter(s.data.Rows, sel)
		log.FromContext(r.Context()).WithComponent(log.ComponentDashboard).DebugContext(r.Context(),
			"Snapshot computed", log.NewFields().
				WithSelection(sel.Len(), len(s.data.Months)).
				WithOperation(log.OpFilter).
				With(log.FieldCount, len(rows)).
				ToSlice()...)
		return snapshot{Rows: rows, KPIs: core.Aggregate(rows)}, nil
	})
	return sel, snap
}

func (s *Server) onRateLimited(r *http.Request) {
	s.metrics.RateLimited()
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).
		WarnContext(r.Context(), "Rate limit exceeded", log.FieldPath, r.URL.Path)
}

// fail logs err and answers 500. Nothing has been written to w yet.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error, component, op string) {
	s.sl.LogError(r.Context(), msg, err, component, op, log.NewFields().
		WithRequestID(trace.GetRequestID(r.Context())))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
