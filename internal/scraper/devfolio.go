package scraper

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/pkg/config"
)

const devfolioEndpoint = "https://api.devfolio.co/api/hackathons"

// DevfolioScraper polls Devfolio's public hackathon API for listings
// with open applications.
type DevfolioScraper struct {
	baseURL   string
	pages     int
	userAgent string
	client    *retryablehttp.Client
	logger    *zap.Logger
}

// NewDevfolioScraper constructs the scraper from config.
func NewDevfolioScraper(cfg config.ScraperConfig, logger *zap.Logger) *DevfolioScraper {
	pages := cfg.DevfolioPages
	if pages <= 0 {
		pages = 2
	}
	return &DevfolioScraper{
		baseURL:   devfolioEndpoint,
		pages:     pages,
		userAgent: cfg.UserAgent,
		client:    newHTTPClient(cfg.HTTPTimeout),
		logger:    logger,
	}
}

// Platform identifies this scraper.
func (s *DevfolioScraper) Platform() string {
	return "Devfolio"
}

// FetchListings pages through the application_open feed and maps each
// record into an event. It stops early when a page comes back empty.
func (s *DevfolioScraper) FetchListings(ctx context.Context) ([]models.Event, error) {
	var events []models.Event

	for page := 1; page <= s.pages; page++ {
		url := fmt.Sprintf("%s?filter=application_open&page=%d", s.baseURL, page)
		body, err := fetchBody(ctx, s.client, url, s.userAgent)
		if err != nil {
			s.logger.Warn("devfolio page fetch failed", zap.Int("page", page), zap.Error(err))
			break
		}

		records := gjson.Get(body, "result").Array()
		if len(records) == 0 {
			break
		}

		for _, rec := range records {
			events = append(events, s.mapRecord(rec))
		}
	}

	s.logger.Info("devfolio scrape finished", zap.Int("events", len(events)))
	return events, nil
}

func (s *DevfolioScraper) mapRecord(rec gjson.Result) models.Event {
	ev := models.Event{
		Title:       rec.Get("name").String(),
		Description: stripHTML(rec.Get("desc").String()),
		Type:        "hackathon",
		StartDate:   NormalizeDate(rec.Get("starts_at").String()),
		EndDate:     NormalizeDate(rec.Get("ends_at").String()),
		Deadline:    NormalizeDate(rec.Get("submission_ends_at").String()),
		Tags:        taglineTags(rec.Get("tagline")),
		HostedBy:    "Devfolio",
		Verified:    true,
	}

	if slug := rec.Get("slug").String(); slug != "" {
		ev.RedirectURL = fmt.Sprintf("https://%s.devfolio.co", slug)
	} else {
		ev.RedirectURL = "https://devfolio.co"
	}

	return ev
}

// taglineTags coerces the tagline field to a tag list: an array maps
// element-wise, a bare string becomes a one-element list, anything
// else falls back to the default.
func taglineTags(tagline gjson.Result) []string {
	if tagline.IsArray() {
		var tags []string
		for _, item := range tagline.Array() {
			tags = append(tags, item.String())
		}
		if deduped := dedupeTags(tags); len(deduped) > 0 {
			return deduped
		}
		return []string{"hackathon"}
	}
	if tagline.Type == gjson.String && tagline.String() != "" {
		return []string{tagline.String()}
	}
	return []string{"hackathon"}
}
