// Package server assembles the HTTP surface and owns its lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/quirky-blu/heatmap/internal/config"
	"github.com/quirky-blu/heatmap/internal/health"
	"github.com/quirky-blu/heatmap/internal/logger"
	imw "github.com/quirky-blu/heatmap/internal/middleware"
	"github.com/quirky-blu/heatmap/internal/query"
	"github.com/quirky-blu/heatmap/internal/router"
	"github.com/quirky-blu/heatmap/internal/store"
)

// NewHandler wires the routes over an already-loaded store.
func NewHandler(cfg config.Config, zl *zerolog.Logger, st *store.Store) http.Handler {
	h := router.NewHandlers(zl, query.New(st))

	r := chi.NewRouter()
	r.Use(imw.Recover())
	r.Use(imw.RequestID())
	r.Use(imw.CORS())

	r.With(imw.Observe(zl, "/")).Get("/", h.Index)
	r.With(imw.Observe(zl, "/api/geojson")).Get("/api/geojson", h.GeoJSON)
	r.With(imw.Observe(zl, "/api/info")).Get("/api/info", h.Info)

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(st))
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

// Run loads the partitions, then serves until ctx is cancelled or the
// listener fails.
func Run(ctx context.Context, cfg config.Config, zl *zerolog.Logger) error {
	appLog := logger.NewSlog(zl)

	st := store.Load(store.FileLoader{Dir: cfg.DataDir, Pattern: cfg.FilePattern}, cfg.NumPartitions, appLog)
	appLog.Info("store ready", "partitions_loaded", st.Loaded(), "partitions_configured", st.N())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(cfg, zl, st),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("http listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
