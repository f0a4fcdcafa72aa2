package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
)

const (
	testWaitTimeout = 2 * time.Second
	testWaitTick    = 10 * time.Millisecond
)

type aggregatorMock struct {
	mu      sync.Mutex
	runs    int
	events  []models.Event
	scraped int
	block   chan struct{}
}

func (m *aggregatorMock) Run(ctx context.Context) ([]models.Event, int) {
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()
	if m.block != nil {
		<-m.block
	}
	return m.events, m.scraped
}

func (m *aggregatorMock) runCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

type gatewayMock struct {
	saved  int
	purged int64
}

func (m *gatewayMock) Ingest(ctx context.Context, candidates []models.Event) int {
	return m.saved
}

func (m *gatewayMock) PurgeExpired(ctx context.Context) (int64, error) {
	return m.purged, nil
}

func TestTriggerReturnsSummary(t *testing.T) {
	agg := &aggregatorMock{events: []models.Event{{Title: "One Fine Hack"}}, scraped: 5}
	gw := &gatewayMock{saved: 3}
	svc := NewSchedulerService(agg, gw, nil, "0 0,6,12,18 * * *", zap.NewNop())

	summary, err := svc.Trigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Scraped)
	assert.Equal(t, 3, summary.Saved)
	assert.Equal(t, 1, agg.runCount())
}

func TestTriggerSingleFlight(t *testing.T) {
	block := make(chan struct{})
	agg := &aggregatorMock{block: block}
	svc := NewSchedulerService(agg, &gatewayMock{}, nil, "0 0,6,12,18 * * *", zap.NewNop())

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, err := svc.Trigger(context.Background())
		assert.NoError(t, err)
	}()

	// Wait until the first run is inside the aggregator.
	require.Eventually(t, func() bool { return agg.runCount() == 1 },
		testWaitTimeout, testWaitTick)

	_, err := svc.Trigger(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrScrapeInProgress) || appErrors.FromError(err).Code == appErrors.ErrScrapeInProgress.Code)

	close(block)
	<-firstDone

	// With the first run finished a new trigger goes through again.
	_, err = svc.Trigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, agg.runCount())
}

func TestStatusLifecycle(t *testing.T) {
	svc := NewSchedulerService(&aggregatorMock{}, &gatewayMock{}, nil, "0 0,6,12,18 * * *", zap.NewNop())

	status := svc.Status()
	assert.False(t, status.IsRunning)
	assert.Equal(t, "0 0,6,12,18 * * *", status.Schedule)
	assert.Nil(t, status.NextRunTime)

	require.NoError(t, svc.Start())
	defer svc.Stop()

	status = svc.Status()
	assert.True(t, status.IsRunning)
	require.NotNil(t, status.NextRunTime)

	svc.Stop()
	status = svc.Status()
	assert.False(t, status.IsRunning)
}

func TestStartRejectsBadCron(t *testing.T) {
	svc := NewSchedulerService(&aggregatorMock{}, &gatewayMock{}, nil, "not a schedule", zap.NewNop())
	require.Error(t, svc.Start())
}
