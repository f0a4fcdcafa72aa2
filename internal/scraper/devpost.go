package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/pkg/config"
)

const devpostEndpoint = "https://devpost.com/api/hackathons"

// DevpostScraper polls Devpost's hackathon API. Devpost reports the
// submission window as one display string ("June 23 - July 30, 2025"),
// so both dates are recovered from that.
type DevpostScraper struct {
	baseURL   string
	pages     int
	userAgent string
	client    *retryablehttp.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewDevpostScraper constructs the scraper from config.
func NewDevpostScraper(cfg config.ScraperConfig, logger *zap.Logger) *DevpostScraper {
	pages := cfg.DevpostPages
	if pages <= 0 {
		pages = 4
	}
	return &DevpostScraper{
		baseURL:   devpostEndpoint,
		pages:     pages,
		userAgent: cfg.UserAgent,
		client:    newHTTPClient(cfg.HTTPTimeout),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Platform identifies this scraper.
func (s *DevpostScraper) Platform() string {
	return "Devpost"
}

// FetchListings pages through the hackathon feed up to the page cap,
// stopping early on an empty page.
func (s *DevpostScraper) FetchListings(ctx context.Context) ([]models.Event, error) {
	var events []models.Event

	for page := 1; page <= s.pages; page++ {
		url := fmt.Sprintf("%s?page=%d", s.baseURL, page)
		body, err := fetchBody(ctx, s.client, url, s.userAgent)
		if err != nil {
			s.logger.Warn("devpost page fetch failed", zap.Int("page", page), zap.Error(err))
			break
		}

		records := gjson.Get(body, "hackathons").Array()
		if len(records) == 0 {
			break
		}

		for _, rec := range records {
			events = append(events, s.mapRecord(rec))
		}
	}

	s.logger.Info("devpost scrape finished", zap.Int("events", len(events)))
	return events, nil
}

func (s *DevpostScraper) mapRecord(rec gjson.Result) models.Event {
	period := rec.Get("submission_period_dates").String()
	startDate, endDate := s.parseSubmissionPeriod(period)

	var tags []string
	for _, theme := range rec.Get("themes.#.name").Array() {
		tags = append(tags, theme.String())
	}
	tags = dedupeTags(tags)
	if len(tags) == 0 {
		tags = []string{"hackathon"}
	}

	return models.Event{
		Title:       rec.Get("title").String(),
		Description: stripHTML(rec.Get("description").String()),
		Type:        "hackathon",
		StartDate:   startDate,
		EndDate:     endDate,
		Deadline:    s.extractDeadline(rec),
		Tags:        tags,
		HostedBy:    "Devpost",
		Verified:    true,
		RedirectURL: rec.Get("url").String(),
	}
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// parseSubmissionPeriod splits "June 23 - July 30, 2025" into start and
// end dates. The start half usually lacks a year, which is borrowed
// from the end half (or the current year as a last resort).
func (s *DevpostScraper) parseSubmissionPeriod(raw string) (*string, *string) {
	parts := strings.Split(raw, " - ")
	if len(parts) != 2 {
		return nil, nil
	}

	startPart := strings.TrimSpace(parts[0])
	endPart := strings.TrimSpace(parts[1])

	year := yearPattern.FindString(endPart)
	if year == "" {
		year = fmt.Sprintf("%d", s.now().Year())
		endPart = endPart + ", " + year
	}

	startDate := NormalizeDateAt(startPart+", "+year, s.now())
	endDate := NormalizeDateAt(endPart, s.now())
	return startDate, endDate
}

// extractDeadline prefers the explicit countdown field and falls back
// to a "N days left" marker inside the submission period string.
func (s *DevpostScraper) extractDeadline(rec gjson.Result) *string {
	if raw := rec.Get("time_left_to_submission").String(); raw != "" {
		if deadline := NormalizeDateAt(raw, s.now()); deadline != nil {
			return deadline
		}
	}
	period := rec.Get("submission_period_dates").String()
	if daysLeftPattern.MatchString(period) {
		return NormalizeDateAt(period, s.now())
	}
	return nil
}
