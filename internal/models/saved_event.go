package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// SavedEvent is a user's bookmark. It snapshots the event payload at
// save time, so expiring the underlying event does not touch saves.
type SavedEvent struct {
	UserID    string         `db:"user_id" json:"user_id"`
	EventKey  string         `db:"event_key" json:"event_key"`
	Event     types.JSONText `db:"event" json:"event"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
