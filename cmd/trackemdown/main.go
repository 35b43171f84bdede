package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/nikhilsingh/trackemdown/internal/core/config"
	"github.com/nikhilsingh/trackemdown/internal/core/httpclient"
	"github.com/nikhilsingh/trackemdown/internal/core/observability"
	"github.com/nikhilsingh/trackemdown/internal/core/server"
	"github.com/nikhilsingh/trackemdown/internal/geocode"
	"github.com/nikhilsingh/trackemdown/internal/geotag"
	"github.com/nikhilsingh/trackemdown/internal/logger"
	h3mapper "github.com/nikhilsingh/trackemdown/internal/mapper/h3"
	"github.com/nikhilsingh/trackemdown/internal/metrics"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func run() int {
	// flags override env
	addrFlag := flag.String("addr", "", "listen address")
	geocoderFlag := flag.String("geocoder", "", "geocoder base URL")
	logLevelFlag := flag.String("log-level", "", "log level")
	flag.Parse()

	loaded := config.LoadDotenv()
	cfg := config.FromEnv()
	if *addrFlag != "" {
		cfg.Addr = strings.TrimSpace(*addrFlag)
	}
	if *geocoderFlag != "" {
		cfg.GeocoderURL = strings.TrimSpace(*geocoderFlag)
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = strings.TrimSpace(*logLevelFlag)
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		SampleN:   envInt("LOG_SAMPLE_N", 0),
		Component: "trackemdown",
	}, os.Stdout)

	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	if len(loaded) > 0 {
		appLog.Info("loaded env files", "files", strings.Join(loaded, ","))
	}
	appLog.Info("starting geotagging service",
		"addr", cfg.Addr,
		"version", Version,
		"geocoder", cfg.GeocoderURL,
		"h3_res_default", cfg.H3ResDefault)

	httpClient := httpclient.NewOutbound()

	gc, err := geocode.New(appLog, httpClient, cfg.GeocoderURL, cfg.UserAgent, cfg.GeocoderTimeout)
	if err != nil {
		appLog.Error("failed to initialize geocoder client", "err", err)
		return 1
	}

	mapr := h3mapper.New()
	resolver := geotag.New(appLog, gc, mapr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Getenv("METRICS_ENABLED") == "true" {
		addr := os.Getenv("METRICS_ADDR")
		if addr == "" {
			addr = ":9090"
		}
		path := os.Getenv("METRICS_PATH")
		if path == "" {
			path = "/metrics"
		}

		buildVersion := os.Getenv("BUILD_VERSION")
		if buildVersion == "" {
			buildVersion = Version
		}
		p := metrics.Init(metrics.BuildInfo{
			Version:   buildVersion,
			Revision:  os.Getenv("BUILD_REVISION"),
			Branch:    os.Getenv("BUILD_BRANCH"),
			BuildDate: os.Getenv("BUILD_DATE"),
		})

		mux := http.NewServeMux()
		mux.Handle(path, p.Handler())

		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		// start server
		go func() {
			log.Printf("metrics: listening on %s%s", addr, path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("metrics server exited: %v", err)
			}
		}()

		// shutdown on signal
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("metrics: shutdown error: %v", err)
			}
		}()
	}

	if err := server.Run(ctx, cfg, appLog, resolver, mapr, gc); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}
