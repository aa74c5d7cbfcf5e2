package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/okian/bgexplorer/internal/adapters/chart"
	"github.com/okian/bgexplorer/internal/adapters/http/api"
	"github.com/okian/bgexplorer/internal/adapters/http/site"
	"github.com/okian/bgexplorer/internal/adapters/http/swagger"
	service "github.com/okian/bgexplorer/internal/app"
	"github.com/okian/bgexplorer/internal/config"
	"github.com/okian/bgexplorer/pkg/logger"
	"github.com/okian/bgexplorer/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the explorer dashboard and JSON API",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := c.cfg
	log := logger.Get()

	svc := newService(cfg,
		service.WithReloadInterval(cfg.ReloadInterval),
		service.WithQueryCacheSize(cfg.QueryCacheSize),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newHandler wires the API, the docs and the dashboard onto one router.
// The dashboard catch-all is registered last.
func newHandler(ctx context.Context, cfg *config.Config, svc *service.Service) chi.Router {
	renderer := chart.New(
		chart.WithSize(cfg.ChartWidth, cfg.ChartHeight),
		chart.WithLogger(logger.Named("chart")),
	)
	r := api.NewRouter(ctx, api.NewServer(svc, renderer, logger.Named("api")))
	swagger.Register(ctx, r)
	site.Register(ctx, r)
	return r
}

// newService builds a service from the loaded config.
func newService(cfg *config.Config, opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithLogger(logger.Named("service")),
		service.WithDatasetSource(cfg.DatasetSource),
		service.WithDatasetTable(cfg.DatasetTable),
		service.WithIngestFloors(cfg.MinYear, cfg.MinUsersRated),
		service.WithTopK(cfg.TopK),
		service.WithFilterLimits(cfg.FilterLimit, cfg.MaxFilterLimit),
		service.WithNameSearchLimit(cfg.NameSearchLimit),
	}
	return service.New(append(base, opts...)...)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes service gauges; GetStats updates
// the cache gauge as a side effect.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
