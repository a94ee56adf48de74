package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/tobiasbuchner/StockChronicle/internal/csvstore"
	"github.com/tobiasbuchner/StockChronicle/internal/ingest"
	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
)

type Scheduler struct {
	ingestSvc    *ingest.Service
	snapshots    *csvstore.Store
	retention    int
	ingestEvery  time.Duration
	cleanupEvery time.Duration
	scheduler    gocron.Scheduler
}

func New(ingestSvc *ingest.Service, snapshots *csvstore.Store, retentionDays int, ingestEvery, cleanupEvery time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		ingestSvc:    ingestSvc,
		snapshots:    snapshots,
		retention:    retentionDays,
		ingestEvery:  ingestEvery,
		cleanupEvery: cleanupEvery,
		scheduler:    s,
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	log := logger.With("scheduler")

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.ingestEvery),
		gocron.NewTask(func() {
			s.ingestSvc.Run(ctx)
		}),
	)
	if err != nil {
		return err
	}

	_, err = s.scheduler.NewJob(
		gocron.DurationJob(s.cleanupEvery),
		gocron.NewTask(func() {
			s.cleanupSnapshots()
		}),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Info().
		Dur("ingest_every", s.ingestEvery).
		Dur("cleanup_every", s.cleanupEvery).
		Msg("scheduler started")

	return nil
}

func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		log := logger.With("scheduler")
		log.Error().Err(err).Msg("scheduler shutdown error")
	}
}

func (s *Scheduler) cleanupSnapshots() {
	log := logger.With("scheduler")

	deleted, err := s.snapshots.DeleteOlderThan(s.retention)
	if err != nil {
		log.Error().Err(err).Msg("snapshot cleanup failed")
		return
	}
	if deleted > 0 {
		log.Info().Int("deleted", deleted).Int("retention_days", s.retention).Msg("old snapshots removed")
	}
}
