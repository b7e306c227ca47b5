package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/connections-leaderboard/internal/config"
	"github.com/mcoot/connections-leaderboard/internal/factory"
	"github.com/mcoot/connections-leaderboard/internal/platform/discord"
)

func main() {
	// Load configuration before logging so the level is honored
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if cfg.Token == "" {
		logger.Error("CONNLB_TOKEN is required")
		os.Exit(1)
	}

	// Create the Discord session and platform adapter
	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		logger.Error("failed to create discord session", slog.String("error", err.Error()))
		os.Exit(1)
	}
	platform := discord.NewPlatform(session, logger)

	// Create application factory
	app, err := factory.New(factory.Options{
		Config:   cfg,
		Sender:   platform,
		Resolver: platform,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("storage close error", slog.String("error", err.Error()))
		}
	}()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Attach the message handler and connect
	handler := discord.NewHandler(platform, app.CommandsController, app.DeliveryGate, cfg.CommandPrefix, logger)
	handler.Register(ctx, session)

	if err := session.Open(); err != nil {
		logger.Error("failed to connect to discord", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("discord close error", slog.String("error", err.Error()))
		}
	}()

	// Start the scheduler
	go app.Scheduler.Run(ctx)

	// Health and metrics listener
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	logger.Info("bot started",
		slog.String("addr", cfg.Addr),
		slog.String("channel", cfg.ChannelName),
		slog.String("storage", cfg.StorageType),
	)

	// Wait for shutdown or listener error
	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("bot stopped")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
