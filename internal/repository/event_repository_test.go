package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

func newEventMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEventRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newEventMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "type", "start_date", "end_date", "deadline", "tags", "hosted_by", "verified", "redirect_url", "created_at"}).
		AddRow("ev-1", "Mock Hack", "desc", "hackathon", "2025-08-01", "2025-08-03", nil, "{ai,web}", "Devfolio", true, "https://mock.devfolio.co", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, type, start_date, end_date, deadline, tags, hosted_by, verified, redirect_url, created_at\nFROM events ORDER BY created_at DESC")).
		WillReturnRows(rows)

	events, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Mock Hack", events[0].Title)
	require.NotNil(t, events[0].StartDate)
	assert.Equal(t, "2025-08-01", *events[0].StartDate)
	assert.Nil(t, events[0].Deadline)
	assert.Equal(t, []string{"ai", "web"}, []string(events[0].Tags))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryExistsByTitleAndHost(t *testing.T) {
	db, mock, cleanup := newEventMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM events WHERE title = $1 AND hosted_by = $2)")).
		WithArgs("Mock Hack", "Devfolio").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByTitleAndHost(context.Background(), "Mock Hack", "Devfolio")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryInsertAssignsID(t *testing.T) {
	db, mock, cleanup := newEventMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec("INSERT INTO events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := &models.Event{Title: "Inserted Hack", HostedBy: "Devpost", Tags: []string{"x"}}
	require.NoError(t, repo.Insert(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryDeleteExpired(t *testing.T) {
	db, mock, cleanup := newEventMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec("DELETE FROM events").
		WithArgs("2025-07-10").
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteExpired(context.Background(), "2025-07-10")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCount(t *testing.T) {
	db, mock, cleanup := newEventMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
