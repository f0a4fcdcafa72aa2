package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/pkg/config"
)

const eventbriteListingURL = "https://www.eventbrite.com/d/online/hackathon/"

// EventbriteScraper drives a headless browser because Eventbrite has no
// stable public API. Strategy: load the listing page while intercepting
// in-flight JSON responses, and prefer extracting from any intercepted
// API payload that carries listing-shaped objects. Only when that yields
// nothing does it fall back to walking the rendered DOM and visiting
// individual event pages. The whole thing is deliberately monolithic:
// Eventbrite's markup is brittle and every extraction site needs its own
// failure scope.
type EventbriteScraper struct {
	listingURL string
	maxDetails int
	userAgent  string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewEventbriteScraper constructs the scraper from config.
func NewEventbriteScraper(cfg config.ScraperConfig, logger *zap.Logger) *EventbriteScraper {
	maxDetails := cfg.EventbritePages
	if maxDetails <= 0 {
		maxDetails = 5
	}
	return &EventbriteScraper{
		listingURL: eventbriteListingURL,
		maxDetails: maxDetails,
		userAgent:  cfg.UserAgent,
		timeout:    cfg.BrowserTimeout,
		logger:     logger,
	}
}

// Platform identifies this scraper.
func (s *EventbriteScraper) Platform() string {
	return "Eventbrite"
}

// FetchListings owns one headless browser for the duration of the run
// and releases it on every exit path.
func (s *EventbriteScraper) FetchListings(ctx context.Context) ([]models.Event, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(s.userAgent),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, s.timeout)
	defer cancelRun()

	capture := newResponseCapture()
	s.interceptJSON(runCtx, capture)

	var listingHTML string
	err := chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(s.listingURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &listingHTML),
	)
	if err != nil {
		return nil, fmt.Errorf("load eventbrite listing page: %w", err)
	}

	if events := s.eventsFromCapturedAPI(capture.payloads()); len(events) > 0 {
		s.logger.Info("eventbrite scrape finished via intercepted api", zap.Int("events", len(events)))
		return events, nil
	}

	events := s.eventsFromDOM(browserCtx, listingHTML)
	s.logger.Info("eventbrite scrape finished via dom", zap.Int("events", len(events)))
	return events, nil
}

// responseCapture accumulates intercepted JSON bodies.
type responseCapture struct {
	mu     sync.Mutex
	bodies []string
}

func newResponseCapture() *responseCapture {
	return &responseCapture{}
}

func (c *responseCapture) add(body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bodies = append(c.bodies, body)
}

func (c *responseCapture) payloads() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.bodies...)
}

// interceptJSON records the body of every JSON response whose URL looks
// like an API or data call.
func (s *EventbriteScraper) interceptJSON(ctx context.Context, capture *responseCapture) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Response == nil {
			return
		}
		if !strings.Contains(resp.Response.MimeType, "json") {
			return
		}
		if !looksLikeAPICall(resp.Response.URL) {
			return
		}

		requestID := resp.RequestID
		go func() {
			// Body is only retrievable once loading finished; a failed
			// fetch just means this response contributes nothing.
			target := chromedp.FromContext(ctx)
			if target == nil || target.Target == nil {
				return
			}
			body, err := network.GetResponseBody(requestID).Do(cdp.WithExecutor(ctx, target.Target))
			if err != nil {
				return
			}
			capture.add(string(body))
		}()
	})
}

func looksLikeAPICall(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, marker := range []string{"/api/", "search", "destination", "graphql"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// eventsFromCapturedAPI scans intercepted payloads for an array of
// listing-shaped objects and maps whichever one is found first.
func (s *EventbriteScraper) eventsFromCapturedAPI(payloads []string) []models.Event {
	for _, payload := range payloads {
		listings := findListingArray(gjson.Parse(payload), 0)
		if !listings.Exists() {
			continue
		}

		var events []models.Event
		for _, rec := range listings.Array() {
			ev, ok := s.mapAPIRecord(rec)
			if !ok {
				continue
			}
			events = append(events, ev)
		}
		if len(events) > 0 {
			return events
		}
	}
	return nil
}

// findListingArray walks a parsed payload a few levels deep looking for
// an array whose elements carry both a name/title and a url/id.
func findListingArray(res gjson.Result, depth int) gjson.Result {
	if depth > 3 {
		return gjson.Result{}
	}
	if res.IsArray() {
		items := res.Array()
		if len(items) > 0 && isListingShaped(items[0]) {
			return res
		}
		return gjson.Result{}
	}
	if res.IsObject() {
		var found gjson.Result
		res.ForEach(func(_, value gjson.Result) bool {
			candidate := findListingArray(value, depth+1)
			if candidate.Exists() {
				found = candidate
				return false
			}
			return true
		})
		return found
	}
	return gjson.Result{}
}

func isListingShaped(rec gjson.Result) bool {
	if !rec.IsObject() {
		return false
	}
	hasName := rec.Get("name").Exists() || rec.Get("title").Exists()
	hasRef := rec.Get("url").Exists() || rec.Get("id").Exists()
	return hasName && hasRef
}

func (s *EventbriteScraper) mapAPIRecord(rec gjson.Result) (models.Event, bool) {
	title := firstString(rec, "name", "title", "name.text")
	if title == "" {
		return models.Event{}, false
	}

	tags := []string{"eventbrite", "hackathon"}
	for _, tag := range rec.Get("tags.#.display").Array() {
		tags = append(tags, tag.String())
	}

	ev := models.Event{
		Title:       title,
		Description: clampText(stripHTML(firstString(rec, "summary", "description", "description.text")), 500),
		Type:        "hackathon",
		StartDate:   NormalizeDate(firstString(rec, "start_date", "start.local", "start.utc")),
		EndDate:     NormalizeDate(firstString(rec, "end_date", "end.local", "end.utc")),
		Deadline:    NormalizeDate(firstString(rec, "sales_end", "ticket_availability.sales_end")),
		Tags:        dedupeTags(tags),
		HostedBy:    firstStringDefault(rec, "Eventbrite", "primary_organizer.name", "organizer.name"),
		Verified:    true,
		RedirectURL: firstString(rec, "url", "vanity_url"),
	}
	return ev, true
}

func firstString(rec gjson.Result, paths ...string) string {
	for _, path := range paths {
		if v := rec.Get(path).String(); v != "" {
			return v
		}
	}
	return ""
}

func firstStringDefault(rec gjson.Result, fallback string, paths ...string) string {
	if v := firstString(rec, paths...); v != "" {
		return v
	}
	return fallback
}

// eventsFromDOM is the markup fallback: collect event links from the
// listing page, then visit a handful of detail pages. Each visit is
// isolated so one broken page cannot abort the rest.
func (s *EventbriteScraper) eventsFromDOM(browserCtx context.Context, listingHTML string) []models.Event {
	links := s.detailLinks(listingHTML)
	if len(links) == 0 {
		s.logger.Warn("eventbrite listing page yielded no event links")
		return nil
	}

	var events []models.Event
	for _, link := range links {
		ev, err := s.scrapeDetailPage(browserCtx, link)
		if err != nil {
			s.logger.Warn("eventbrite detail page failed", zap.String("url", link), zap.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events
}

// detailLinks extracts unique event-page URLs from the listing markup.
func (s *EventbriteScraper) detailLinks(listingHTML string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		s.logger.Warn("eventbrite listing parse failed", zap.Error(err))
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find(`a[href*="/e/"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		normalized := normalizeEventURL(href)
		if normalized == "" {
			return true
		}
		if _, dup := seen[normalized]; dup {
			return true
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
		return len(links) < s.maxDetails
	})
	return links
}

func normalizeEventURL(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if parsed.Host == "" {
		parsed.Scheme = "https"
		parsed.Host = "www.eventbrite.com"
	}
	if !strings.Contains(parsed.Path, "/e/") {
		return ""
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

// Ranked selector candidates per field; first non-empty match wins.
var (
	titleSelectors = []string{
		`h1[data-testid="event-title"]`,
		"h1.event-title",
		"h1",
	}
	descriptionSelectors = []string{
		"div.has-user-generated-content",
		`div[data-testid="summary"]`,
		".summary",
		`p[class*="summary"]`,
	}
	organizerSelectors = []string{
		`a[data-testid="organizer-name"]`,
		".descriptive-organizer-info__name",
		`strong[class*="organizer"]`,
	}
	dateSelectors = []string{
		"time[datetime]",
		`span[data-testid="event-datetime"]`,
		".date-info__full-datetime",
	}
)

func (s *EventbriteScraper) scrapeDetailPage(browserCtx context.Context, pageURL string) (models.Event, error) {
	html, err := s.renderPage(browserCtx, pageURL)
	if err != nil {
		return models.Event{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Event{}, fmt.Errorf("parse detail page: %w", err)
	}

	title := firstSelectorText(doc, titleSelectors)
	if title == "" {
		return models.Event{}, fmt.Errorf("no title found at %s", pageURL)
	}

	description := firstSelectorText(doc, descriptionSelectors)
	if description == "" {
		description, _ = doc.Find(`meta[name="description"]`).Attr("content")
	}

	startDate, endDate := s.extractDates(doc)

	ev := models.Event{
		Title:       title,
		Description: clampText(description, 500),
		Type:        "hackathon",
		StartDate:   startDate,
		EndDate:     endDate,
		Tags:        []string{"eventbrite", "hackathon"},
		HostedBy:    firstSelectorTextDefault(doc, organizerSelectors, "Eventbrite"),
		Verified:    true,
		RedirectURL: pageURL,
	}

	// The registration panel sometimes carries a sales-end date missing
	// from the main page.
	if ev.Deadline == nil {
		ev.Deadline = s.recoverDeadline(browserCtx, doc, pageURL)
	}

	return ev, nil
}

// renderPage loads one URL in a fresh tab with its own deadline.
func (s *EventbriteScraper) renderPage(browserCtx context.Context, pageURL string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	pageCtx, cancelPage := context.WithTimeout(tabCtx, 30*time.Second)
	defer cancelPage()

	var html string
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", pageURL, err)
	}
	return html, nil
}

func (s *EventbriteScraper) extractDates(doc *goquery.Document) (*string, *string) {
	var dates []*string
	doc.Find("time[datetime]").Each(func(_ int, sel *goquery.Selection) {
		if raw, ok := sel.Attr("datetime"); ok {
			if d := NormalizeDate(raw); d != nil {
				dates = append(dates, d)
			}
		}
	})
	if len(dates) == 0 {
		if raw := firstSelectorText(doc, dateSelectors); raw != "" {
			dates = append(dates, NormalizeDate(raw))
		}
	}

	switch len(dates) {
	case 0:
		return nil, nil
	case 1:
		return dates[0], dates[0]
	default:
		return dates[0], dates[1]
	}
}

// recoverDeadline follows the checkout/register link off the detail
// page, looking for a sales-end timestamp. Best effort only.
func (s *EventbriteScraper) recoverDeadline(browserCtx context.Context, doc *goquery.Document, pageURL string) *string {
	href, ok := doc.Find(`a[href*="tickets"], a[href*="register"]`).First().Attr("href")
	if !ok {
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	registerURL := base.ResolveReference(ref).String()

	html, err := s.renderPage(browserCtx, registerURL)
	if err != nil {
		s.logger.Warn("eventbrite register page failed", zap.String("url", registerURL), zap.Error(err))
		return nil
	}

	regDoc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var deadline *string
	regDoc.Find("time[datetime]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if raw, ok := sel.Attr("datetime"); ok {
			if d := NormalizeDate(raw); d != nil {
				deadline = d
				return false
			}
		}
		return true
	})
	return deadline
}

func firstSelectorText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return strings.Join(strings.Fields(text), " ")
		}
	}
	return ""
}

func firstSelectorTextDefault(doc *goquery.Document, selectors []string, fallback string) string {
	if text := firstSelectorText(doc, selectors); text != "" {
		return text
	}
	return fallback
}
