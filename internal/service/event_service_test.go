package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
)

type eventRepoMock struct {
	events      []models.Event
	existing    map[string]bool
	inserted    []models.Event
	insertErr   error
	deleteCount int64
}

func (m *eventRepoMock) ListAll(ctx context.Context) ([]models.Event, error) {
	return m.events, nil
}

func (m *eventRepoMock) ExistsByTitleAndHost(ctx context.Context, title, hostedBy string) (bool, error) {
	return m.existing[title+"|"+hostedBy], nil
}

func (m *eventRepoMock) Insert(ctx context.Context, event *models.Event) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, *event)
	if m.existing == nil {
		m.existing = map[string]bool{}
	}
	m.existing[event.Title+"|"+event.HostedBy] = true
	return nil
}

func (m *eventRepoMock) DeleteExpired(ctx context.Context, today string) (int64, error) {
	return m.deleteCount, nil
}

func (m *eventRepoMock) Count(ctx context.Context) (int, error) {
	return len(m.events), nil
}

func TestIngestSkipsDuplicates(t *testing.T) {
	repo := &eventRepoMock{existing: map[string]bool{"Known Hack|Devfolio": true}}
	svc := NewEventService(repo, nil, time.Minute, nil, zap.NewNop())

	batch := []models.Event{
		{Title: "Known Hack", HostedBy: "Devfolio"},
		{Title: "Fresh Hack", HostedBy: "Devpost"},
	}
	saved := svc.Ingest(context.Background(), batch)

	assert.Equal(t, 1, saved)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "Fresh Hack", repo.inserted[0].Title)
}

func TestIngestIsIdempotent(t *testing.T) {
	repo := &eventRepoMock{}
	svc := NewEventService(repo, nil, time.Minute, nil, zap.NewNop())

	batch := []models.Event{{Title: "Repeat Hack", HostedBy: "Devfolio"}}
	assert.Equal(t, 1, svc.Ingest(context.Background(), batch))
	assert.Equal(t, 0, svc.Ingest(context.Background(), batch))
	assert.Len(t, repo.inserted, 1)
}

func TestIngestContinuesPastInsertFailure(t *testing.T) {
	repo := &eventRepoMock{insertErr: errors.New("constraint violation")}
	svc := NewEventService(repo, nil, time.Minute, nil, zap.NewNop())

	saved := svc.Ingest(context.Background(), []models.Event{
		{Title: "Doomed Hack", HostedBy: "Devpost"},
	})
	assert.Equal(t, 0, saved)
}

func TestCreateNormalizesInput(t *testing.T) {
	repo := &eventRepoMock{}
	svc := NewEventService(repo, nil, time.Minute, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC) }

	var req CreateEventRequest
	payload := `{
		"title": "Manual Hack",
		"hosted_by": "Community Org",
		"verified": "TRUE",
		"startDate": "15 Jul 2025",
		"deadline": "3 days left"
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	event, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Community Org", event.HostedBy)
	assert.True(t, event.Verified)
	assert.Equal(t, "hackathon", event.Type)
	require.NotNil(t, event.StartDate)
	assert.Equal(t, "2025-07-15", *event.StartDate)
	require.NotNil(t, event.Deadline)
	assert.Equal(t, "2025-07-13", *event.Deadline)
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := NewEventService(&eventRepoMock{}, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEventRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestCreatePrefersSnakeCaseHost(t *testing.T) {
	repo := &eventRepoMock{}
	svc := NewEventService(repo, nil, time.Minute, nil, zap.NewNop())

	event, err := svc.Create(context.Background(), CreateEventRequest{
		Title:         "Casing Hack",
		HostedBySnake: "Snake Org",
		HostedByCamel: "Camel Org",
	})
	require.NoError(t, err)
	assert.Equal(t, "Snake Org", event.HostedBy)
}

func TestPurgeExpired(t *testing.T) {
	repo := &eventRepoMock{deleteCount: 4}
	svc := NewEventService(repo, nil, time.Minute, nil, zap.NewNop())

	removed, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
}
