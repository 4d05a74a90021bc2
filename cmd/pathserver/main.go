// Package main runs the path validation authority.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ajmoran/hexfray/internal/gateway"
	"github.com/ajmoran/hexfray/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	addr := flag.String("addr", envOr("HEXFRAY_SERVER_ADDR", ":5001"), "listen address")
	budget := flag.Int("combat-budget", gateway.DefaultCombatBudget, "max approved steps per combat plan")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, "hexfray-pathserver")
	if err != nil {
		logger.Warn("telemetry setup failed; running without observability", "err", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("telemetry shutdown failed", "err", err)
			}
		}()
	}

	server := gateway.NewServer(logger, *budget)
	if err := gateway.ListenAndServe(ctx, *addr, server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

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
