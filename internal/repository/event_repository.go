package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

// EventRepository provides persistence for scraped listings.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListAll returns the full event table, newest first. Filtering,
// sorting and pagination happen in memory at the service layer, so
// this is the only read path the query engine needs.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	const query = `SELECT id, title, description, type, start_date, end_date, deadline, tags, hosted_by, verified, redirect_url, created_at
FROM events ORDER BY created_at DESC`
	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ExistsByTitleAndHost reports whether a listing with this identity
// pair is already stored.
func (r *EventRepository) ExistsByTitleAndHost(ctx context.Context, title, hostedBy string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM events WHERE title = $1 AND hosted_by = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, title, hostedBy); err != nil {
		return false, fmt.Errorf("check event exists: %w", err)
	}
	return exists, nil
}

// Insert stores a new event, assigning an id and created_at when absent.
func (r *EventRepository) Insert(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO events (id, title, description, type, start_date, end_date, deadline, tags, hosted_by, verified, redirect_url, created_at)
VALUES (:id, :title, :description, :type, :start_date, :end_date, :deadline, :tags, :hosted_by, :verified, :redirect_url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// DeleteExpired removes events whose deadline, start date or end date
// falls strictly before today. Dates are canonical YYYY-MM-DD strings,
// so the comparison is textual. NULL and empty dates never expire.
func (r *EventRepository) DeleteExpired(ctx context.Context, today string) (int64, error) {
	const query = `DELETE FROM events
WHERE (deadline IS NOT NULL AND deadline <> '' AND deadline < $1)
   OR (start_date IS NOT NULL AND start_date <> '' AND start_date < $1)
   OR (end_date IS NOT NULL AND end_date <> '' AND end_date < $1)`
	result, err := r.db.ExecContext(ctx, query, today)
	if err != nil {
		return 0, fmt.Errorf("delete expired events: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired events: %w", err)
	}
	return removed, nil
}

// Count returns the number of stored events.
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM events"); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return total, nil
}
