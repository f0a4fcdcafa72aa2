package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

// SavedEventRepository provides persistence for user bookmarks.
type SavedEventRepository struct {
	db *sqlx.DB
}

// NewSavedEventRepository creates the repository.
func NewSavedEventRepository(db *sqlx.DB) *SavedEventRepository {
	return &SavedEventRepository{db: db}
}

// ListByUser returns a user's bookmarks, newest first.
func (r *SavedEventRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedEvent, error) {
	const query = `SELECT user_id, event_key, event, created_at
FROM saved_events WHERE user_id = $1 ORDER BY created_at DESC`
	saved := []models.SavedEvent{}
	if err := r.db.SelectContext(ctx, &saved, query, userID); err != nil {
		return nil, fmt.Errorf("list saved events: %w", err)
	}
	return saved, nil
}

// Upsert stores a bookmark. Saving the same event twice is a no-op.
func (r *SavedEventRepository) Upsert(ctx context.Context, saved *models.SavedEvent) error {
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO saved_events (user_id, event_key, event, created_at)
VALUES (:user_id, :event_key, :event, :created_at)
ON CONFLICT (user_id, event_key) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, saved); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

// Delete removes a bookmark, returning how many rows went away so the
// caller can distinguish a real removal from a missing key.
func (r *SavedEventRepository) Delete(ctx context.Context, userID, eventKey string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM saved_events WHERE user_id = $1 AND event_key = $2", userID, eventKey)
	if err != nil {
		return 0, fmt.Errorf("delete saved event: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted saved events: %w", err)
	}
	return removed, nil
}
