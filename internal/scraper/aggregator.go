package scraper

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

// Titles shorter than this are junk records (placeholder rows, ad
// tiles) and never reach the store.
const minTitleLength = 5

// Aggregator fans out to every registered platform scraper and merges
// the results into one cleaned batch.
type Aggregator struct {
	scrapers []Scraper
	logger   *zap.Logger
}

// NewAggregator wires the platform scrapers together.
func NewAggregator(logger *zap.Logger, scrapers ...Scraper) *Aggregator {
	return &Aggregator{
		scrapers: scrapers,
		logger:   logger,
	}
}

// Run executes every scraper in sequence and returns the cleaned batch
// together with the raw scraped count. The raw count includes records
// that the title filter later drops, so the two numbers can legally
// differ. A scraper failure is logged and the remaining platforms still
// run.
func (a *Aggregator) Run(ctx context.Context) ([]models.Event, int) {
	var (
		cleaned []models.Event
		scraped int
	)

	for _, s := range a.scrapers {
		if ctx.Err() != nil {
			a.logger.Warn("scrape cycle cancelled", zap.Error(ctx.Err()))
			break
		}

		events, err := s.FetchListings(ctx)
		if err != nil {
			a.logger.Error("platform scrape failed",
				zap.String("platform", s.Platform()),
				zap.Error(err))
			continue
		}

		scraped += len(events)
		for _, ev := range events {
			if !usableEvent(&ev) {
				continue
			}
			normalizeEvent(&ev)
			cleaned = append(cleaned, ev)
		}
	}

	a.logger.Info("scrape cycle finished",
		zap.Int("scraped", scraped),
		zap.Int("usable", len(cleaned)))
	return cleaned, scraped
}

func usableEvent(ev *models.Event) bool {
	return len(strings.TrimSpace(ev.Title)) >= minTitleLength
}

func normalizeEvent(ev *models.Event) {
	ev.Title = strings.TrimSpace(ev.Title)
	ev.Tags = dedupeTags(ev.Tags)
	if ev.Type == "" {
		ev.Type = "hackathon"
	}
}
