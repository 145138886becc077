package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"salesdash/internal/dataset"
	apphttp "salesdash/internal/http"
	"salesdash/internal/log"
	"salesdash/internal/metrics"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, logger, err := opts.setup()
	if err != nil {
		return err
	}
	sl := log.NewStructuredLogger(logger.WithComponent(log.ComponentDataset))

	data, err := dataset.Open(cfg.DataFile)
	if err != nil {
		sl.LogError(ctx, "Failed to load sales data", err, log.ComponentDataset, log.OpLoad,
			log.LogFields{log.FieldDataFile: cfg.DataFile})
		return err
	}
	sl.LogDatasetLoaded(ctx, data.Source, data.Report.Input, data.Report.Kept, data.Report.Dropped, len(data.Months))

	m := metrics.New()
	m.ObserveDataset(data.Report)

	srv, err := apphttp.NewServer(cfg, data, logger, m)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting salesdash server", log.FieldAddr, srv.Addr, log.FieldDataFile, cfg.DataFile)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		srv.Maintain(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, log.FieldAddr, srv.Addr)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
