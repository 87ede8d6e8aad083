// Package main provides the Waypoint HTTP server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waypointhq/waypoint/internal/config"
	"github.com/waypointhq/waypoint/internal/db"
	"github.com/waypointhq/waypoint/internal/evidence"
	"github.com/waypointhq/waypoint/internal/llm"
	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/search"
	"github.com/waypointhq/waypoint/internal/server"
	"github.com/waypointhq/waypoint/internal/service"
)

func main() {
	wipeDB := flag.Bool("wipe", false, "wipe all job data on startup (testing only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = cleanup() }()
	slog.SetDefault(logger)

	logger.Info("starting waypoint-server", "addr", cfg.ServerAddr)

	// Database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	mc := metrics.NewCollector()
	store, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
	}, logger, mc)
	if err != nil {
		cancel()
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := store.InitSchema(ctx); err != nil {
		cancel()
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	if *wipeDB {
		if err := store.WipeData(ctx); err != nil {
			cancel()
			logger.Error("failed to wipe database", "error", err)
			os.Exit(1)
		}
	}
	cancel()
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Search adapters. Each is optional: a missing key just removes an
	// evidence source from the pipeline.
	var web evidence.WebSearcher
	if cfg.TavilyAPIKey != "" {
		web, err = search.NewTavilyClient(cfg.TavilyAPIKey, cfg.SearchTimeout, mc)
		if err != nil {
			logger.Error("failed to create tavily client", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("TAVILY_API_KEY not set, web search disabled")
	}

	var products evidence.ProductDiscoverer
	if cfg.ProductHuntToken != "" {
		products, err = search.NewProductHuntClient(cfg.ProductHuntToken, mc)
		if err != nil {
			logger.Error("failed to create producthunt client", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("PRODUCTHUNT_API_TOKEN not set, product discovery disabled")
	}

	var trends evidence.TrendAnalyzer
	if cfg.SerpAPIKey != "" {
		trends, err = search.NewSerpTrendsClient(cfg.SerpAPIKey, cfg.TrendQueryDelay, mc)
		if err != nil {
			logger.Error("failed to create serpapi client", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("SERPAPI_KEY not set, trend analysis disabled")
	}

	// LLM synthesis engine
	modelCtx, modelCancel := context.WithTimeout(context.Background(), 30*time.Second)
	model, err := llm.NewModel(modelCtx, cfg)
	modelCancel()
	if err != nil {
		logger.Error("failed to create LLM model", "provider", string(cfg.LLMProvider), "error", err)
		os.Exit(1)
	}
	engine := llm.NewEngine(model, mc)

	// Pipeline
	collector := evidence.NewCollector(web, products, trends, logger)
	analyzer := service.NewAnalyzer(store, collector, engine, service.NewLogObserver(logger), logger)

	// HTTP server
	srv := server.New(analyzer, mc, logger, cfg.CORSOrigins)
	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("waypoint API listening", "addr", cfg.ServerAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
