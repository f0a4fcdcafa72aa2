package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/internal/scraper"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
)

type eventRepository interface {
	ListAll(ctx context.Context) ([]models.Event, error)
	ExistsByTitleAndHost(ctx context.Context, title, hostedBy string) (bool, error)
	Insert(ctx context.Context, event *models.Event) error
	DeleteExpired(ctx context.Context, today string) (int64, error)
	Count(ctx context.Context) (int, error)
}

type eventCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// EventService owns the listing lifecycle: ingesting scraped batches,
// purging stale rows and serving filtered pages.
type EventService struct {
	repo      eventRepository
	cache     eventCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs the service. The cache may be nil.
func NewEventService(repo eventRepository, cache eventCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Ingest persists a scraped batch, skipping listings already stored
// under the same (title, hostedBy) identity. One bad candidate never
// aborts the batch: insert failures are logged and the rest continue.
// Returns how many new rows were actually saved.
func (s *EventService) Ingest(ctx context.Context, candidates []models.Event) int {
	saved := 0
	for i := range candidates {
		candidate := candidates[i]

		exists, err := s.repo.ExistsByTitleAndHost(ctx, candidate.Title, candidate.HostedBy)
		if err != nil {
			s.logger.Warn("duplicate check failed",
				zap.String("title", candidate.Title),
				zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		if err := s.repo.Insert(ctx, &candidate); err != nil {
			s.logger.Warn("event insert failed",
				zap.String("title", candidate.Title),
				zap.Error(err))
			continue
		}
		saved++
	}

	if saved > 0 {
		s.invalidateCache(ctx)
	}
	s.logger.Info("ingest finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("saved", saved))
	return saved
}

// PurgeExpired removes events whose deadline, start or end date is
// strictly before today (UTC). Events with no dates are kept forever.
func (s *EventService) PurgeExpired(ctx context.Context) (int64, error) {
	today := s.now().Format(models.DateLayout)
	removed, err := s.repo.DeleteExpired(ctx, today)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to purge expired events")
	}
	if removed > 0 {
		s.invalidateCache(ctx)
		s.logger.Info("expired events purged", zap.Int64("removed", removed))
	}
	return removed, nil
}

// Query serves one page of filtered, sorted listings. The full result
// page is cached per filter combination; any write invalidates all of
// them.
func (s *EventService) Query(ctx context.Context, filter models.EventFilter) (*models.EventPage, error) {
	cacheKey := eventPageCacheKey(filter)
	if s.cache != nil {
		var cached models.EventPage
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events")
	}

	page := BuildEventPage(events, filter)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, page, s.cacheTTL); err != nil {
			s.logger.Warn("event page cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

// ListAll returns every stored event, for export.
func (s *EventService) ListAll(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events")
	}
	return events, nil
}

// Count returns the stored event total.
func (s *EventService) Count(ctx context.Context) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count events")
	}
	return total, nil
}

// CreateEventRequest is the manual-submission payload. Clients are
// inconsistent about field casing and boolean encoding, so hosted_by
// has an alias and verified tolerates string forms.
type CreateEventRequest struct {
	Title         string          `json:"title" validate:"required"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	Deadline      string          `json:"deadline"`
	Tags          []string        `json:"tags"`
	HostedBySnake string          `json:"hosted_by"`
	HostedByCamel string          `json:"hostedBy"`
	Verified      models.FlexBool `json:"verified"`
	RedirectURL   string          `json:"redirectURL"`
}

func (r CreateEventRequest) hostedBy() string {
	if r.HostedBySnake != "" {
		return r.HostedBySnake
	}
	return r.HostedByCamel
}

// Create stores a manually submitted event. Dates pass through the
// same normalisation as scraped ones.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	eventType := req.Type
	if eventType == "" {
		eventType = "hackathon"
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Type:        eventType,
		StartDate:   s.normalizeDate(req.StartDate),
		EndDate:     s.normalizeDate(req.EndDate),
		Deadline:    s.normalizeDate(req.Deadline),
		Tags:        req.Tags,
		HostedBy:    req.hostedBy(),
		Verified:    req.Verified.Bool(),
		RedirectURL: req.RedirectURL,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to store event")
	}

	s.invalidateCache(ctx)
	return event, nil
}

func (s *EventService) normalizeDate(raw string) *string {
	return scraper.NormalizeDateAt(raw, s.now())
}

func (s *EventService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "events:*"); err != nil {
		s.logger.Warn("event cache invalidation failed", zap.Error(err))
	}
}

func eventPageCacheKey(f models.EventFilter) string {
	return fmt.Sprintf("events:list:%d:%d:%s:%s:%s:%t:%t:%t:%t:%s",
		f.Page, f.Limit, f.Search, f.Platform, f.SortBy,
		f.Free, f.Online, f.Beginner, f.Prize, f.Location)
}
