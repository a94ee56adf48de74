package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/tobiasbuchner/StockChronicle/internal/api"
	"github.com/tobiasbuchner/StockChronicle/internal/config"
	"github.com/tobiasbuchner/StockChronicle/internal/csvstore"
	"github.com/tobiasbuchner/StockChronicle/internal/fetcher"
	"github.com/tobiasbuchner/StockChronicle/internal/ingest"
	"github.com/tobiasbuchner/StockChronicle/internal/registry"
	"github.com/tobiasbuchner/StockChronicle/internal/repo"
	"github.com/tobiasbuchner/StockChronicle/internal/scheduler"
	"github.com/tobiasbuchner/StockChronicle/pkg/extract"
	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
	"github.com/tobiasbuchner/StockChronicle/pkg/meili"
	"github.com/tobiasbuchner/StockChronicle/pkg/natsq"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	sources, err := registry.Load(cfg.SourcesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SourcesPath).Msg("failed to load source registry")
	}
	log.Info().Strs("sources", registry.Names(sources)).Msg("source registry loaded")

	companyRepo, err := repo.NewCompanyRepo(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer companyRepo.Close()

	var searchClient *meili.Client
	if cfg.MeiliURL != "" {
		searchClient, err = meili.New(cfg.MeiliURL, cfg.MeiliAPIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to meilisearch")
		}
	}

	var publisher *natsq.Publisher
	if cfg.NatsURL != "" {
		natsClient, err := natsq.New(cfg.NatsURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer natsClient.Close()
		publisher = natsq.NewPublisher(natsClient)
	}

	snapshots := csvstore.New(cfg.DataDir)
	pipeline := extract.NewPipeline(fetcher.New(cfg.FetchTimeout))
	ingestSvc := ingest.NewService(sources, pipeline, companyRepo, snapshots, searchClient, publisher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched, err := scheduler.New(ingestSvc, snapshots, cfg.CSVRetention, cfg.IngestEvery, cfg.CleanupEvery)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	// First run right away, the scheduler covers the follow-ups.
	go ingestSvc.Run(ctx)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api.NewHandler(ingestSvc, companyRepo, searchClient).SetupRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.HTTPPort).Msg("http server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	cancel()
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
}
