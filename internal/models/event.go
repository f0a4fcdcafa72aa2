package models

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// DateLayout is the canonical calendar-date form used everywhere:
// scraper output, database columns and API payloads. Comparing two
// values of this form lexicographically agrees with comparing them by
// calendar day.
const DateLayout = "2006-01-02"

// Event represents one hackathon/competition listing. Scrapers emit it
// without an ID; the store assigns one on insert. Identity for
// deduplication is the (title, hostedBy) pair.
type Event struct {
	ID          string         `db:"id" json:"id,omitempty"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Type        string         `db:"type" json:"type"`
	StartDate   *string        `db:"start_date" json:"startDate"`
	EndDate     *string        `db:"end_date" json:"endDate"`
	Deadline    *string        `db:"deadline" json:"deadline"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	HostedBy    string         `db:"hosted_by" json:"hostedBy"`
	Verified    bool           `db:"verified" json:"verified"`
	RedirectURL string         `db:"redirect_url" json:"redirectURL"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at,omitempty"`
}

// Key derives the stable reference used by saved-event rows. Scraped
// events may not have a persisted id at save time, hence the fallback
// chain.
func (e Event) Key() string {
	if e.ID != "" {
		return "id:" + e.ID
	}
	if e.RedirectURL != "" {
		return "url:" + e.RedirectURL
	}
	title := e.Title
	if title == "" {
		title = "event"
	}
	host := e.HostedBy
	if host == "" {
		host = "host"
	}
	return fmt.Sprintf("title:%s|host:%s", title, host)
}

// SearchBlob concatenates the free-text fields the heuristic filters
// match against, lowercased.
func (e Event) SearchBlob() string {
	var b bytes.Buffer
	b.WriteString(e.Title)
	b.WriteByte(' ')
	b.WriteString(e.Description)
	b.WriteByte(' ')
	b.WriteString(strings.Join(e.Tags, " "))
	b.WriteByte(' ')
	b.WriteString(e.HostedBy)
	return strings.ToLower(b.String())
}

// EventFilter captures the query parameters of the events list endpoint.
type EventFilter struct {
	Page     int
	Limit    int
	Search   string
	Platform string
	SortBy   string
	Free     bool
	Online   bool
	Beginner bool
	Prize    bool
	Location string
}

// EventPage is the list response shape consumed by the SPA.
type EventPage struct {
	Data       []Event `json:"data"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
}

// ScrapeSummary reports the outcome of one scrape-and-ingest cycle.
// Saved < Scraped signals duplicates, dropped candidates or partial
// persistence failures.
type ScrapeSummary struct {
	Scraped int `json:"scraped"`
	Saved   int `json:"saved"`
}

// SchedulerStatus is the read-only control-plane snapshot.
type SchedulerStatus struct {
	IsRunning           bool       `json:"isRunning"`
	IsCurrentlyScraping bool       `json:"isCurrentlyScraping"`
	LastRunTime         *time.Time `json:"lastRunTime"`
	NextRunTime         *time.Time `json:"nextRunTime"`
	Schedule            string     `json:"schedule"`
}
