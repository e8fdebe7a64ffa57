package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/RouterHaus/routerhaus/internal/advisor"
	"github.com/RouterHaus/routerhaus/internal/api"
	"github.com/RouterHaus/routerhaus/internal/config"
	"github.com/RouterHaus/routerhaus/internal/kits"
	"github.com/RouterHaus/routerhaus/internal/prefs"
	"github.com/RouterHaus/routerhaus/internal/server"
	"github.com/RouterHaus/routerhaus/internal/store"
	"github.com/RouterHaus/routerhaus/internal/version"
	"github.com/RouterHaus/routerhaus/pkg/presets"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("RouterHaus server starting")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Open the preference store
	db, err := store.New(cfg.GetString("db.path"))
	if err != nil {
		logger.Fatal("failed to open preference store", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := prefs.NewSQLiteRepository(ctx, db)
	if err != nil {
		logger.Fatal("failed to migrate preference store", zap.Error(err))
	}
	prefSvc := prefs.NewService(repo, logger)

	// Load and derive the kit catalog. Candidate sources are tried in
	// order; the server will not start without a catalog.
	registry := prometheus.NewRegistry()
	metrics := kits.NewMetrics(registry)

	sources := cfg.GetStringSlice("catalog.sources")
	if url := cfg.GetString("catalog.url"); url != "" {
		sources = append([]string{url}, sources...)
	}
	catalog, err := kits.NewLoader(sources, logger, metrics).Load(ctx)
	if err != nil {
		logger.Fatal("failed to load kit catalog", zap.Error(err))
	}

	engine := kits.NewEngine(catalog, logger, metrics)

	// Create and start the HTTP server
	addr := cfg.GetString("server.addr")
	srv := server.New(addr, logger, registry)
	srv.Mount(
		api.NewHandler(engine, prefSvc, presets.NewCatalog(), logger),
		advisor.NewHandler(advisor.New(logger), prefSvc, logger),
	)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("RouterHaus server ready",
		zap.String("addr", addr),
		zap.Int("kits", engine.Size()),
	)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	timeout := cfg.GetDuration("server.shutdown_timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("RouterHaus server stopped")
}
