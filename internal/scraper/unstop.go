package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/pkg/config"
)

const unstopEndpoint = "https://unstop.com/api/public/opportunity/search-result"

// Unstop's paginated payload nests the records under data.data, which
// is an array on some pages and a numerically keyed object on others.
// gjson's ForEach walks both shapes.
type UnstopScraper struct {
	baseURL   string
	pages     int
	userAgent string
	client    *retryablehttp.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewUnstopScraper constructs the scraper from config.
func NewUnstopScraper(cfg config.ScraperConfig, logger *zap.Logger) *UnstopScraper {
	pages := cfg.UnstopPages
	if pages <= 0 {
		pages = 3
	}
	return &UnstopScraper{
		baseURL:   unstopEndpoint,
		pages:     pages,
		userAgent: cfg.UserAgent,
		client:    newHTTPClient(cfg.HTTPTimeout),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Platform identifies this scraper.
func (s *UnstopScraper) Platform() string {
	return "Unstop"
}

// FetchListings pages through the hackathon search feed, skipping
// already-ended opportunities, and stops early when a page is empty or
// the API reports no further pages.
func (s *UnstopScraper) FetchListings(ctx context.Context) ([]models.Event, error) {
	var events []models.Event

	for page := 1; page <= s.pages; page++ {
		url := fmt.Sprintf("%s?opportunity=hackathons&page=%d", s.baseURL, page)
		body, err := fetchBody(ctx, s.client, url, s.userAgent)
		if err != nil {
			s.logger.Warn("unstop page fetch failed", zap.Int("page", page), zap.Error(err))
			break
		}

		paginated := gjson.Get(body, "data")
		records := paginated.Get("data")
		if !records.Exists() {
			break
		}

		count := 0
		records.ForEach(func(_, item gjson.Result) bool {
			count++
			if ev, ok := s.mapRecord(item); ok {
				events = append(events, ev)
			}
			return true
		})
		if count == 0 {
			break
		}

		if paginated.Get("next_page_url").String() == "" {
			break
		}
	}

	s.logger.Info("unstop scrape finished", zap.Int("events", len(events)))
	return events, nil
}

func (s *UnstopScraper) mapRecord(item gjson.Result) (models.Event, bool) {
	title := item.Get("title").String()

	endDate := NormalizeDateAt(item.Get("end_date").String(), s.now())
	if isPastDate(endDate, s.now()) {
		return models.Event{}, false
	}

	ev := models.Event{
		Title:       title,
		Description: s.extractDescription(item),
		Type:        "hackathons",
		StartDate:   NormalizeDateAt(item.Get("start_date").String(), s.now()),
		EndDate:     endDate,
		Deadline:    NormalizeDateAt(item.Get("regnRequirements.end_regn_dt").String(), s.now()),
		Tags:        unstopTags(item, strings.ToLower(title)),
		HostedBy:    s.extractHost(item),
		Verified:    true,
	}

	if publicURL := item.Get("public_url").String(); publicURL != "" {
		ev.RedirectURL = "https://unstop.com/" + strings.TrimPrefix(publicURL, "/")
	} else {
		ev.RedirectURL = "https://unstop.com"
	}

	return ev, true
}

// extractDescription strips the rich-text details field and falls back
// through progressively weaker sources when it is missing or too short
// to be useful. The result is clamped to 500 characters.
func (s *UnstopScraper) extractDescription(item gjson.Result) string {
	description := stripHTML(item.Get("details").String())

	if len(description) < 20 {
		for _, path := range []string{"featured_title", "overall_prizes", "seo_details.0.description"} {
			if alt := item.Get(path).String(); alt != "" {
				description = alt
				break
			}
		}
	}
	if len(description) < 20 {
		description = fmt.Sprintf("%s - Competition/Hackathon on Unstop", item.Get("title").String())
	}

	return clampText(description, 500)
}

func (s *UnstopScraper) extractHost(item gjson.Result) string {
	if name := item.Get("organisation.name").String(); name != "" {
		return name
	}
	return "Unstop"
}

var unstopTechKeywords = []string{"ai", "ml", "data", "coding", "programming", "web", "app", "tech", "innovation"}

// unstopTags builds the tag list: the platform marker first, then
// type/subtype/region, then tech keywords matched against the title.
func unstopTags(item gjson.Result, titleLower string) []string {
	tags := []string{"unstop"}

	switch item.Get("type").String() {
	case "hackathons":
		tags = append(tags, "hackathon")
	case "competitions":
		tags = append(tags, "competition")
	}

	if subtype := item.Get("subtype").String(); subtype != "" {
		tags = append(tags, strings.ReplaceAll(subtype, "_", " "))
	}
	if region := item.Get("region").String(); region != "" {
		tags = append(tags, region)
	}

	for _, keyword := range unstopTechKeywords {
		if strings.Contains(titleLower, keyword) {
			tags = append(tags, keyword)
		}
	}

	return dedupeTags(tags)
}
