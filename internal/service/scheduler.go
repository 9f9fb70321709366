package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the periodic housekeeping jobs: refetching datasets and
// evicting idle quiz sessions.
type Scheduler struct {
	datasets        DatasetRefresher
	sessions        SessionSweeper
	refreshSchedule string // cron spec, empty disables dataset refresh
	sweepSchedule   string // cron spec, empty disables session eviction
	logger          *zap.Logger
}

// NewScheduler creates a new scheduler.
func NewScheduler(
	datasets DatasetRefresher,
	sessions SessionSweeper,
	refreshSchedule string,
	sweepSchedule string,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		datasets:        datasets,
		sessions:        sessions,
		refreshSchedule: refreshSchedule,
		sweepSchedule:   sweepSchedule,
		logger:          logger,
	}
}

// Start registers the jobs and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	c, err := s.build(ctx)
	if err != nil {
		return err
	}

	c.Start()
	s.logger.Info("scheduler started",
		zap.String("refresh_schedule", s.refreshSchedule),
		zap.String("sweep_schedule", s.sweepSchedule),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")

	return nil
}

func (s *Scheduler) build(ctx context.Context) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	if s.refreshSchedule != "" {
		if _, err := c.AddFunc(s.refreshSchedule, func() { s.refreshDatasets(ctx) }); err != nil {
			return nil, fmt.Errorf("add dataset refresh job: %w", err)
		}
	}

	if s.sweepSchedule != "" {
		if _, err := c.AddFunc(s.sweepSchedule, s.sweepSessions); err != nil {
			return nil, fmt.Errorf("add session sweep job: %w", err)
		}
	}

	return c, nil
}

func (s *Scheduler) refreshDatasets(ctx context.Context) {
	s.logger.Info("cron triggered: refreshing datasets")
	if err := s.datasets.Refresh(ctx); err != nil {
		s.logger.Error("failed to refresh datasets", zap.Error(err))
	}
}

func (s *Scheduler) sweepSessions() {
	if n := s.sessions.Sweep(); n > 0 {
		s.logger.Info("idle quiz sessions evicted", zap.Int("count", n))
	}
}
