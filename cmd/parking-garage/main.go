package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-garage/internal/config"
	"parking-garage/internal/garage"
	"parking-garage/internal/logging"
	"parking-garage/internal/server"
	"parking-garage/internal/shell"
)

var (
	mode       = flag.String("mode", "cli", "Mode to run: cli, server, or both")
	port       = flag.Int("port", 0, "Port for HTTP server (overrides the config file)")
	configPath = flag.String("config", "config.toml", "Path to the TOML config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.HTTPPort = *port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryProvider, err := garage.NewTelemetryProvider(cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize telemetry: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.Telemetry.ServiceName, cfg.Logs.Level)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch *mode {
	case "cli":
		runCLI(ctx, cancel, telemetryProvider, sigChan)
	case "server":
		runServer(ctx, cancel, cfg, telemetryProvider, sigChan)
	case "both":
		runBoth(ctx, cancel, cfg, telemetryProvider, sigChan)
	default:
		fmt.Fprintf(os.Stderr, "Invalid mode: %s. Must be cli, server, or both\n", *mode)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, cancel context.CancelFunc, telemetryProvider *garage.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		logging.Info(context.Background(), "shutting down")
		cancel()
	}()

	sh := shell.New(telemetryProvider)
	sh.Run(ctx)

	shutdownTelemetry(telemetryProvider)
}

func newGarage(ctx context.Context, cfg *config.Config, telemetryProvider *garage.TelemetryProvider) *garage.InstrumentedGarage {
	g, err := garage.NewInstrumentedGarage(cfg.Garage.Capacity, telemetryProvider)
	if err != nil {
		logging.Error(ctx, "failed to create garage", slog.Any("error", err))
		os.Exit(1)
	}

	logging.Info(ctx, "garage ready", slog.Int("capacity", cfg.Garage.Capacity))
	return g
}

func runServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, telemetryProvider *garage.TelemetryProvider, sigChan chan os.Signal) {
	g := newGarage(ctx, cfg, telemetryProvider)
	srv := server.NewServer(cfg.Server, g)

	go func() {
		<-sigChan
		logging.Info(context.Background(), "received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error(shutdownCtx, "server shutdown error", slog.Any("error", err))
		}

		cancel()
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error(ctx, "server error", slog.Any("error", err))
	}

	shutdownTelemetry(telemetryProvider)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, telemetryProvider *garage.TelemetryProvider, sigChan chan os.Signal) {
	g := newGarage(ctx, cfg, telemetryProvider)
	srv := server.NewServer(cfg.Server, g)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan bool, 1)
	go func() {
		sh := shell.New(telemetryProvider)
		sh.Run(ctx)
		cliDone <- true
	}()

	go func() {
		<-sigChan
		logging.Info(context.Background(), "received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error(shutdownCtx, "server shutdown error", slog.Any("error", err))
		}

		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "server error", slog.Any("error", err))
		}
	case <-cliDone:
		logging.Info(ctx, "CLI exited")
	case <-ctx.Done():
		logging.Info(context.Background(), "context cancelled")
	}

	shutdownTelemetry(telemetryProvider)
}

func shutdownTelemetry(telemetryProvider *garage.TelemetryProvider) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		logging.Error(shutdownCtx, "error shutting down telemetry", slog.Any("error", err))
	}
}
