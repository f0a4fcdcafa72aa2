package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const devpostPageOne = `{
	"hackathons": [
		{
			"title": "Global Health Hack",
			"description": "Prototype tools for community health workers.",
			"submission_period_dates": "June 23 - July 30, 2025",
			"time_left_to_submission": "",
			"themes": [{"name": "Health"}, {"name": "Social Good"}],
			"url": "https://globalhealth.devpost.com"
		},
		{
			"title": "Closing Soon Hack",
			"description": "Last call.",
			"submission_period_dates": "5 days left",
			"themes": [],
			"url": "https://closingsoon.devpost.com"
		}
	]
}`

func TestDevpostFetchListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(devpostPageOne))
			return
		}
		w.Write([]byte(`{"hackathons": []}`))
	}))
	defer srv.Close()

	s := NewDevpostScraper(testScraperConfig(), zap.NewNop())
	s.baseURL = srv.URL
	s.now = func() time.Time { return fixedNow }

	events, err := s.FetchListings(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "Global Health Hack", first.Title)
	require.NotNil(t, first.StartDate)
	assert.Equal(t, "2025-06-23", *first.StartDate)
	require.NotNil(t, first.EndDate)
	assert.Equal(t, "2025-07-30", *first.EndDate)
	assert.Equal(t, []string{"Health", "Social Good"}, []string(first.Tags))
	assert.Equal(t, "Devpost", first.HostedBy)
	assert.Equal(t, "https://globalhealth.devpost.com", first.RedirectURL)

	second := events[1]
	assert.Equal(t, []string{"hackathon"}, []string(second.Tags))
	require.NotNil(t, second.Deadline)
	assert.Equal(t, "2025-07-15", *second.Deadline)
}

func TestParseSubmissionPeriod(t *testing.T) {
	s := NewDevpostScraper(testScraperConfig(), zap.NewNop())
	s.now = func() time.Time { return fixedNow }

	start, end := s.parseSubmissionPeriod("June 23 - July 30, 2025")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2025-06-23", *start)
	assert.Equal(t, "2025-07-30", *end)

	// No year anywhere borrows the current one.
	start, end = s.parseSubmissionPeriod("Aug 1 - Aug 15")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2025-08-01", *start)
	assert.Equal(t, "2025-08-15", *end)

	start, end = s.parseSubmissionPeriod("ongoing")
	assert.Nil(t, start)
	assert.Nil(t, end)
}
