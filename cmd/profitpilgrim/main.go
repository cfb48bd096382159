// Package main is the entry point for Profit Pilgrim.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/config"
	"github.com/samdwyer/profitpilgrim/internal/game"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
	"github.com/samdwyer/profitpilgrim/internal/save"
	"github.com/samdwyer/profitpilgrim/internal/telemetry"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return 1
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Printf("Failed to load game data: %v", err)
		return 1
	}

	store, err := save.Open(cfg.SavePath, nil)
	if err != nil {
		log.Printf("Failed to open saves: %v", err)
		return 1
	}
	defer store.Close()

	eng, err := game.LoadOrNew(ctx, store, cfg, catalog, clock.RealClock{})
	if err != nil {
		log.Printf("Failed to load slot %s: %v", cfg.SaveSlot, err)
		return 1
	}

	g, err := game.New(cfg, eng, store)
	if err != nil {
		log.Printf("Failed to initialize game: %v", err)
		return 1
	}

	if err := g.Run(ctx); err != nil {
		log.Printf("Game error: %v", err)
		return 1
	}
	return 0
}

func loadCatalog(cfg config.Config) (*gamedata.Catalog, error) {
	if cfg.CatalogDir == "" {
		return gamedata.LoadCatalog()
	}
	return gamedata.LoadCatalogFrom(os.DirFS(cfg.CatalogDir))
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// The .env file may hold an unexpanded reference, so build the header here.
	apiKey := os.Getenv("HONEYCOMB_PILGRIM_API_KEY")
	dataset := os.Getenv("HONEYCOMB_PILGRIM_DATASET")
	if dataset == "" {
		dataset = "profitpilgrim"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
