package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mkoss/manhunt/internal/api"
	"github.com/mkoss/manhunt/internal/factory"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		TickRateHz:      envInt("MANHUNT_TICK_RATE_HZ", factory.DefaultTickRateHz),
		SpeedMultiplier: envFloat("MANHUNT_SPEED", factory.DefaultSpeedMultiplier),
		Logger:          logger,
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create router and server
	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Registry:    app.Registry,
		Phase:       app.Phase,
		Hub:         app.Hub,
		Broadcaster: app.Broadcaster,
		WSHandler:   app.WSHandler,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.BindAddress = os.Getenv("MANHUNT_BIND_ADDR")
	serverConfig.BindPort = envInt("MANHUNT_BIND_PORT", serverConfig.BindPort)
	server := api.NewServer(router, serverConfig, logger)

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

	// The tick loop runs for the process lifetime
	go app.Broadcaster.Run(ctx)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func envInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		slog.Warn("ignoring invalid value", slog.String("var", key), slog.String("value", val))
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		slog.Warn("ignoring invalid value", slog.String("var", key), slog.String("value", val))
	}
	return defaultVal
}
