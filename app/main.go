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

	"github.com/mattn/go-isatty"

	"github.com/jurbib/digest/app/api"
	"github.com/jurbib/digest/app/cfg"
	"github.com/jurbib/digest/app/config"
	"github.com/jurbib/digest/app/database"
	"github.com/jurbib/digest/app/render"
	"github.com/jurbib/digest/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Digest", "version", appCfg.Version, "timezone", appCfg.Timezone)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	schema, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Debug("Database ready", "path", db.Path(), "schema_version", schema.Version)

	seenRepo := database.NewSeenItemRepository(db)
	digestArchive := database.NewDigestArchive(db)

	if appCfg.Serve {
		if err := serve(appCfg, seenRepo, digestArchive); err != nil {
			slog.Error("Server failed", "error", err)
			db.Close()
			os.Exit(1)
		}
		return
	}

	if err := run(appCfg, seenRepo, digestArchive); err != nil {
		slog.Error("Digest run failed", "error", err)
		db.Close()
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg, seenRepo database.SeenRepository, digestArchive database.DigestRepository) error {
	digestConfig, err := config.NewLoader(appCfg.ConfigFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load digest configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := tasks.NewFetcher(&http.Client{}, appCfg.UserAgent, appCfg.Timeout)
	pipeline := tasks.NewPipeline(digestConfig, seenRepo, digestArchive, fetcher, tasks.PipelineOptions{
		Days:              appCfg.Days,
		OutputDir:         appCfg.OutputDir,
		SkipFailedSources: appCfg.SkipFailedSources,
	})

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Println(render.Summary(result.Root))
	}
	fmt.Println(result.OutputPath)

	return nil
}

func serve(appCfg *cfg.Cfg, seenRepo database.SeenRepository, digestArchive database.DigestRepository) error {
	handler := api.NewHandler(digestArchive, seenRepo, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case serveErr = <-serverErrChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Digest server stopped")

	return serveErr
}
