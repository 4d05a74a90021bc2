// Package main is the entry point for the hexfray client.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ajmoran/hexfray/internal/config"
	"github.com/ajmoran/hexfray/internal/game"
	"github.com/ajmoran/hexfray/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_HEXFRAY_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, "hexfray")
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfgPath := os.Getenv("HEXFRAY_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if url := os.Getenv("HEXFRAY_SERVER_URL"); url != "" {
		cfg.ServerURL = url
	}

	logger, closeLog, err := buildLogger()
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	// Create and run the session
	sess, err := game.NewSession(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize session: %v", err)
	}

	if err := sess.Run(ctx); err != nil {
		log.Fatalf("Session error: %v", err)
	}
}

// buildLogger routes structured logs to HEXFRAY_LOG_FILE when set and
// discards them otherwise: the terminal belongs to the UI once tcell
// takes over, so logs cannot go to stdout.
func buildLogger() (*slog.Logger, func(), error) {
	path := os.Getenv("HEXFRAY_LOG_FILE")
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_HEXFRAY_API_KEY")
	dataset := os.Getenv("HONEYCOMB_HEXFRAY_DATASET")
	if dataset == "" {
		dataset = "hexfray" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
