package ingest

import (
	"context"
	"time"

	"github.com/tobiasbuchner/StockChronicle/internal/csvstore"
	"github.com/tobiasbuchner/StockChronicle/internal/repo"
	"github.com/tobiasbuchner/StockChronicle/pkg/extract"
	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
	"github.com/tobiasbuchner/StockChronicle/pkg/meili"
	"github.com/tobiasbuchner/StockChronicle/pkg/models"
	"github.com/tobiasbuchner/StockChronicle/pkg/natsq"
)

// Service runs the extraction pipeline over the configured sources and
// hands usable results to the persistence collaborators.
type Service struct {
	sources   map[string]extract.SourceConfig
	pipeline  *extract.Pipeline
	companies *repo.CompanyRepo
	snapshots *csvstore.Store
	search    *meili.Client    // optional
	publisher *natsq.Publisher // optional
}

func NewService(
	sources map[string]extract.SourceConfig,
	pipeline *extract.Pipeline,
	companies *repo.CompanyRepo,
	snapshots *csvstore.Store,
	search *meili.Client,
	publisher *natsq.Publisher,
) *Service {
	return &Service{
		sources:   sources,
		pipeline:  pipeline,
		companies: companies,
		snapshots: snapshots,
		search:    search,
		publisher: publisher,
	}
}

// Run processes every configured source, persists success and partial
// results, and publishes the aggregate report. Persistence errors
// degrade logging only, never other sources.
func (s *Service) Run(ctx context.Context) models.IngestReport {
	log := logger.With("ingest")
	runAt := time.Now().UTC()

	results := s.pipeline.RunAll(ctx, s.sources)

	outcomes := make([]models.SourceOutcome, 0, len(results))
	for _, result := range results {
		outcome := models.SourceOutcome{
			Source:  result.Source,
			Status:  result.Status,
			Records: len(result.Records),
			Issues:  result.Issues,
		}
		if result.Err != nil {
			outcome.Error = result.Err.Error()
		}

		if result.Status != extract.StatusFailed {
			s.persist(ctx, result, runAt)
		}

		outcomes = append(outcomes, outcome)
	}

	report := models.IngestReport{
		RunAt:   runAt,
		Report:  extract.Summarize(results),
		Sources: outcomes,
	}

	log.Info().
		Int("succeeded", report.Report.Succeeded).
		Int("partial", report.Report.Partial).
		Int("failed", report.Report.Failed).
		Int("records", report.Report.Records).
		Int("issues", report.Report.Issues).
		Msg("ingest run finished")

	if s.publisher != nil {
		if err := s.publisher.PublishIngestReport(ctx, report); err != nil {
			log.Error().Err(err).Msg("failed to publish ingest report")
		}
	}

	return report
}

func (s *Service) persist(ctx context.Context, result extract.ExtractionResult, runAt time.Time) {
	log := logger.With("ingest")

	if s.snapshots != nil {
		if path, err := s.snapshots.Write(result.Source, result.Records); err != nil {
			log.Error().Err(err).Str("source", result.Source).Msg("failed to write csv snapshot")
		} else {
			log.Debug().Str("file", path).Msg("csv snapshot written")
		}
	}

	companies := make([]models.Company, 0, len(result.Records))
	for _, rec := range result.Records {
		companies = append(companies, models.FromRecord(result.Source, rec, runAt))
	}

	if s.companies != nil {
		written, err := s.companies.UpsertAll(ctx, companies)
		if err != nil {
			log.Error().Err(err).Str("source", result.Source).Int("written", written).Msg("mongo upsert failed")
		} else {
			log.Info().Str("source", result.Source).Int("written", written).Msg("companies stored")
		}
	}

	if s.search != nil {
		if err := s.search.IndexCompanies(companies); err != nil {
			log.Error().Err(err).Str("source", result.Source).Msg("search indexing failed")
		}
	}
}
