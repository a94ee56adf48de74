package main

import (
	"context"
	"os"
	"time"

	"github.com/tobiasbuchner/StockChronicle/internal/config"
	"github.com/tobiasbuchner/StockChronicle/internal/csvstore"
	"github.com/tobiasbuchner/StockChronicle/internal/registry"
	"github.com/tobiasbuchner/StockChronicle/internal/repo"
	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
	"github.com/tobiasbuchner/StockChronicle/pkg/models"
)

// Backfills mongo from the CSV snapshots on disk. Useful after a
// storage reset or when importing snapshots produced elsewhere.
func main() {
	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	sources, err := registry.Load(cfg.SourcesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load source registry")
	}

	companyRepo, err := repo.NewCompanyRepo(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer companyRepo.Close()

	snapshots := csvstore.New(cfg.DataDir)
	ctx := context.Background()
	loadedAt := time.Now().UTC()

	failures := 0
	for _, name := range registry.Names(sources) {
		records, err := snapshots.Read(name)
		if err != nil {
			if os.IsNotExist(err) {
				log.Warn().Str("source", name).Msg("no snapshot on disk, skipping")
			} else {
				log.Error().Err(err).Str("source", name).Msg("failed to read snapshot")
				failures++
			}
			continue
		}

		companies := make([]models.Company, 0, len(records))
		for _, rec := range records {
			companies = append(companies, models.FromRecord(name, rec, loadedAt))
		}

		written, err := companyRepo.UpsertAll(ctx, companies)
		if err != nil {
			log.Error().Err(err).Str("source", name).Int("written", written).Msg("load failed")
			failures++
			continue
		}
		log.Info().Str("source", name).Int("written", written).Msg("snapshot loaded")
	}

	if failures > 0 {
		log.Error().Int("failures", failures).Msg("load finished with errors")
		os.Exit(1)
	}
	log.Info().Msg("all snapshots loaded")
}
