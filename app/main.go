package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/rss-harvester/app/api"
	"github.com/lysyi3m/rss-harvester/app/cfg"
	"github.com/lysyi3m/rss-harvester/app/database"
	"github.com/lysyi3m/rss-harvester/app/feed"
	"github.com/lysyi3m/rss-harvester/app/tasks"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting RSS Harvester", "version", appConfig.Version)

	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appConfig.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	seeds, err := feed.LoadSources(appConfig.SourcesFile)
	if err != nil {
		slog.Error("Failed to load feed sources", "error", err)
		os.Exit(1)
	}
	slog.Info("Feed sources loaded", "count", len(seeds))

	sourceRepo := database.NewSourceRepository(db)
	contentRepo := database.NewContentRepository(db)

	httpClient := &http.Client{}
	feedParser := feed.NewParser()
	sanitizer := feed.NewSanitizer()
	imageResolver := feed.NewImageResolver(httpClient, appConfig.UserAgent,
		time.Duration(appConfig.ImageTimeout)*time.Second,
		appConfig.MinImageWidth, appConfig.ShortCircuitWidth)

	scheduler := tasks.NewScheduler(seeds, sourceRepo, contentRepo, httpClient,
		feedParser, sanitizer, imageResolver)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appConfig.WorkerCount,
		"ingest_interval", appConfig.IngestInterval, "prune_interval", appConfig.PruneInterval)

	apiHandler := api.NewHandler(sourceRepo, contentRepo, scheduler)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
