package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikhilsingh/trackemdown/internal/core/config"
	"github.com/nikhilsingh/trackemdown/internal/core/health"
	"github.com/nikhilsingh/trackemdown/internal/core/middleware"
	"github.com/nikhilsingh/trackemdown/internal/core/router"
	"github.com/nikhilsingh/trackemdown/internal/mapper"
	"github.com/nikhilsingh/trackemdown/internal/ui"
)

// sets up http and starts serving
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, res router.Resolver, mapr mapper.Interface, pinger health.Pinger) error {
	r := chi.NewRouter()
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(pinger))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/geotag", router.HandleGeotag(logger, cfg, res))
	r.Get("/map", ui.HandleMap(logger, cfg, res, mapr))
	r.Get("/", ui.HandlePage(logger, res))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listen", "addr", cfg.Addr)
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
