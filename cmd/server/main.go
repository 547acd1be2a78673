package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/chessdash/internal/api"
	"github.com/vytor/chessdash/internal/config"
	"github.com/vytor/chessdash/internal/logger"
	"github.com/vytor/chessdash/internal/metrics"
	"github.com/vytor/chessdash/internal/records"
	"github.com/vytor/chessdash/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("ChessDash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("data_path=%s", cfg.DataPath)
	log.Debug("data_format=%s", cfg.DataFormat)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_top_k=%d", cfg.DefaultTopK)
	log.Debug("trend_window=%d", cfg.TrendWindow)
	log.Debug("metrics_enabled=%t", cfg.MetricsEnabled)

	// Load the record store once; it is read-only from here on.
	src, closeSource, err := records.Open(cfg.DataFormat, cfg.DataPath)
	if err != nil {
		log.Error("failed to open data source: %v", err)
		os.Exit(1)
	}
	ctx := logger.NewContext(context.Background(), log)
	store, err := records.Load(ctx, src)
	if closeErr := closeSource(); closeErr != nil {
		log.Warn("failed to close data source: %v", closeErr)
	}
	if err != nil {
		log.Error("failed to load records: %v", err)
		os.Exit(1)
	}

	var (
		m        *metrics.Manager
		observer services.QueryObserver
	)
	if cfg.MetricsEnabled {
		m = metrics.New()
		m.SetStoreSize(store.Len(), store.Malformed())
		observer = m
	}

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		Stats:       services.NewStatsService(store, observer),
		Metrics:     m,
		Templates:   tmpl,
		DefaultTopK: cfg.DefaultTopK,
		TrendWindow: cfg.TrendWindow,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("ChessDash Server Stopped")
	log.Info("===========================================")
}
