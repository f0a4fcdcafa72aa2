package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
)

type savedEventRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.SavedEvent, error)
	Upsert(ctx context.Context, saved *models.SavedEvent) error
	Delete(ctx context.Context, userID, eventKey string) (int64, error)
}

// SavedEventService manages per-user bookmarks. A bookmark snapshots
// the event payload, so it survives the event itself expiring.
type SavedEventService struct {
	repo      savedEventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSavedEventService constructs the service.
func NewSavedEventService(repo savedEventRepository, validate *validator.Validate, logger *zap.Logger) *SavedEventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedEventService{repo: repo, validator: validate, logger: logger}
}

// List returns a user's bookmarks, newest first.
func (s *SavedEventService) List(ctx context.Context, userID string) ([]models.SavedEvent, error) {
	saved, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list saved events")
	}
	return saved, nil
}

// SaveEventRequest is the bookmark payload: the full event as shown to
// the user at save time.
type SaveEventRequest struct {
	Event models.Event `json:"event" validate:"required"`
}

// Save stores a bookmark keyed by the event's derived key. Saving the
// same event again is a no-op.
func (s *SavedEventService) Save(ctx context.Context, userID string, req SaveEventRequest) (*models.SavedEvent, error) {
	if req.Event.Title == "" && req.Event.ID == "" && req.Event.RedirectURL == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event payload required")
	}

	snapshot, err := json.Marshal(req.Event)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	saved := &models.SavedEvent{
		UserID:   userID,
		EventKey: req.Event.Key(),
		Event:    snapshot,
	}
	if err := s.repo.Upsert(ctx, saved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save event")
	}
	return saved, nil
}

// Unsave removes a bookmark by key.
func (s *SavedEventService) Unsave(ctx context.Context, userID, eventKey string) error {
	if eventKey == "" {
		return appErrors.Clone(appErrors.ErrValidation, "event key required")
	}
	removed, err := s.repo.Delete(ctx, userID, eventKey)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove saved event")
	}
	if removed == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "saved event not found")
	}
	return nil
}
