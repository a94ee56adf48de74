package main

import (
	"os"

	"github.com/tobiasbuchner/StockChronicle/internal/config"
	"github.com/tobiasbuchner/StockChronicle/internal/csvstore"
	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
)

// One-shot removal of CSV snapshots older than the retention window.
func main() {
	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	deleted, err := csvstore.New(cfg.DataDir).DeleteOlderThan(cfg.CSVRetention)
	if err != nil {
		log.Error().Err(err).Msg("cleanup failed")
		os.Exit(1)
	}

	log.Info().
		Int("deleted", deleted).
		Int("retention_days", cfg.CSVRetention).
		Str("dir", cfg.DataDir).
		Msg("cleanup finished")
}
