package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
)

type aggregatorRunner interface {
	Run(ctx context.Context) ([]models.Event, int)
}

type eventGateway interface {
	Ingest(ctx context.Context, candidates []models.Event) int
	PurgeExpired(ctx context.Context) (int64, error)
}

type scrapeMetrics interface {
	ObserveScrapeRun(result string, duration time.Duration)
	AddEventsSaved(count int)
}

// SchedulerService runs the scrape-and-ingest cycle on a fixed cron
// cadence and exposes a small control plane over it. Cycles are
// single-flight: a trigger while one is running is rejected rather
// than queued.
type SchedulerService struct {
	aggregator aggregatorRunner
	events     eventGateway
	metrics    scrapeMetrics
	cronSpec   string
	logger     *zap.Logger

	mu       sync.Mutex
	cron     *cron.Cron
	entryID  cron.EntryID
	running  bool
	scraping bool
	lastRun  *time.Time
}

// NewSchedulerService constructs the scheduler. Metrics may be nil.
func NewSchedulerService(aggregator aggregatorRunner, events eventGateway, metrics scrapeMetrics, cronSpec string, logger *zap.Logger) *SchedulerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulerService{
		aggregator: aggregator,
		events:     events,
		metrics:    metrics,
		cronSpec:   cronSpec,
		logger:     logger,
	}
}

// Start registers the cron job and kicks off one immediate cycle in
// the background. Starting an already-started scheduler is a no-op.
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC))
	entryID, err := c.AddFunc(s.cronSpec, func() {
		if _, err := s.runScrape(context.Background()); err != nil {
			s.logger.Warn("scheduled scrape skipped", zap.Error(err))
		}
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid cron schedule")
	}

	c.Start()
	s.cron = c
	s.entryID = entryID
	s.running = true
	s.logger.Info("scheduler started", zap.String("schedule", s.cronSpec))

	go func() {
		if _, err := s.runScrape(context.Background()); err != nil {
			s.logger.Warn("initial scrape skipped", zap.Error(err))
		}
	}()

	return nil
}

// Stop halts future scheduled runs. An in-flight cycle finishes on its
// own.
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.cron = nil
	s.running = false
	s.logger.Info("scheduler stopped")
}

// Trigger runs one scrape cycle immediately. Returns
// ErrScrapeInProgress if a cycle is already running.
func (s *SchedulerService) Trigger(ctx context.Context) (*models.ScrapeSummary, error) {
	return s.runScrape(ctx)
}

// Status reports the scheduler snapshot.
func (s *SchedulerService) Status() models.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := models.SchedulerStatus{
		IsRunning:           s.running,
		IsCurrentlyScraping: s.scraping,
		LastRunTime:         s.lastRun,
		Schedule:            s.cronSpec,
	}
	if s.running && s.cron != nil {
		next := s.cron.Entry(s.entryID).Next
		if !next.IsZero() {
			status.NextRunTime = &next
		}
	}
	return status
}

func (s *SchedulerService) runScrape(ctx context.Context) (*models.ScrapeSummary, error) {
	s.mu.Lock()
	if s.scraping {
		s.mu.Unlock()
		return nil, appErrors.ErrScrapeInProgress
	}
	s.scraping = true
	started := time.Now().UTC()
	s.lastRun = &started
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scraping = false
		s.mu.Unlock()
	}()

	s.logger.Info("scrape cycle starting")

	if _, err := s.events.PurgeExpired(ctx); err != nil {
		s.logger.Warn("expired purge failed", zap.Error(err))
	}

	candidates, scraped := s.aggregator.Run(ctx)
	saved := s.events.Ingest(ctx, candidates)

	duration := time.Since(started)
	if s.metrics != nil {
		result := "ok"
		if scraped == 0 {
			result = "empty"
		}
		s.metrics.ObserveScrapeRun(result, duration)
		s.metrics.AddEventsSaved(saved)
	}

	s.logger.Info("scrape cycle complete",
		zap.Int("scraped", scraped),
		zap.Int("saved", saved),
		zap.Duration("duration", duration))

	return &models.ScrapeSummary{Scraped: scraped, Saved: saved}, nil
}
