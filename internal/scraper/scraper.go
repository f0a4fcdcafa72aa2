package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

// Scraper fetches raw listings from one platform and maps them into
// the common event shape. Implementations are defensive: a page or
// listing failure is logged and skipped, and a non-nil error only
// means the platform produced nothing this cycle. The aggregator never
// sees partial or malformed records.
type Scraper interface {
	Platform() string
	FetchListings(ctx context.Context) ([]models.Event, error)
}

// newHTTPClient builds the shared scraper HTTP client. RetryMax stays
// at zero: the pipeline tries once per cycle and the next scheduled
// run covers whatever failed.
func newHTTPClient(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = timeout
	return client
}

// fetchBody GETs a URL and returns the response body as a string.
func fetchBody(ctx context.Context, client *retryablehttp.Client, url, userAgent string) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}

// stripHTML flattens rich-text descriptions to plain text with
// collapsed whitespace.
func stripHTML(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return strings.Join(strings.Fields(raw), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// dedupeTags removes duplicates case-insensitively, preserving the
// order of first occurrence and dropping blanks.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// clampText truncates a string to at most max runes, never splitting a
// multibyte character.
func clampText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
