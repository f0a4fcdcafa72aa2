package service

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

const (
	defaultPageLimit = 12
	maxPageLimit     = 100
)

// Heuristic keyword sets matched against an event's searchable text.
// They mirror what users actually type into listing descriptions, so
// they trade precision for recall.
var (
	freeKeywords     = []string{"free", "no fee", "zero fee", "free entry"}
	onlineKeywords   = []string{"online", "virtual", "remote", "zoom", "discord", "google meet"}
	beginnerKeywords = []string{"beginner", "first time", "no experience", "novice", "introductory", "freshers"}
	prizeKeywords    = []string{"prize", "cash", "award", "scholarship", "$", "inr", "usd", "swag"}
)

var titleCollator = collate.New(language.English, collate.IgnoreCase)

// queryNow is swapped in tests to pin "today" for date-relevance sorts.
var queryNow = func() time.Time { return time.Now().UTC() }

// BuildEventPage runs the whole in-memory query pipeline over the full
// event set: filter, sort, then paginate. The input slice is never
// mutated.
func BuildEventPage(events []models.Event, filter models.EventFilter) *models.EventPage {
	matched := filterEvents(events, filter)
	sortEvents(matched, filter.SortBy)

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &models.EventPage{
		Data:       matched[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func filterEvents(events []models.Event, filter models.EventFilter) []models.Event {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	platform := strings.ToLower(strings.TrimSpace(filter.Platform))
	location := strings.ToLower(strings.TrimSpace(filter.Location))

	matched := make([]models.Event, 0, len(events))
	for _, ev := range events {
		blob := ev.SearchBlob()

		if search != "" && !strings.Contains(blob, search) {
			continue
		}
		if !matchesPlatform(ev, platform) {
			continue
		}
		if filter.Free && !containsAny(blob, freeKeywords) {
			continue
		}
		if filter.Online && !containsAny(blob, onlineKeywords) {
			continue
		}
		if filter.Beginner && !containsAny(blob, beginnerKeywords) {
			continue
		}
		if filter.Prize && !containsAny(blob, prizeKeywords) {
			continue
		}
		if location != "" && !strings.Contains(blob, location) {
			continue
		}

		matched = append(matched, ev)
	}
	return matched
}

// matchesPlatform handles the one platform whose listings keep their
// original organiser as hostedBy: Unstop events are recognised by tag
// instead.
func matchesPlatform(ev models.Event, platform string) bool {
	switch platform {
	case "", "all":
		return true
	case "unstop":
		for _, tag := range ev.Tags {
			if strings.EqualFold(tag, "unstop") {
				return true
			}
		}
		return false
	default:
		return strings.EqualFold(ev.HostedBy, platform)
	}
}

func containsAny(blob string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(blob, keyword) {
			return true
		}
	}
	return false
}

func sortEvents(events []models.Event, sortBy string) {
	today := queryNow().Format(models.DateLayout)

	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "oldest":
		sort.SliceStable(events, func(i, j int) bool {
			return lessByDateAsc(events[i].StartDate, events[j].StartDate)
		})
	case "alphabetical":
		sort.SliceStable(events, func(i, j int) bool {
			return titleCollator.CompareString(events[i].Title, events[j].Title) < 0
		})
	case "endingsoon", "deadline":
		sort.SliceStable(events, func(i, j int) bool {
			return lessByRelevance(deadlineOrEnd(events[i]), deadlineOrEnd(events[j]), today)
		})
	default: // newest
		sort.SliceStable(events, func(i, j int) bool {
			return lessByRelevance(events[i].EndDate, events[j].EndDate, today)
		})
	}
}

func deadlineOrEnd(ev models.Event) *string {
	if ev.Deadline != nil && *ev.Deadline != "" {
		return ev.Deadline
	}
	return ev.EndDate
}

// lessByRelevance orders upcoming dates ascending (soonest first),
// then past dates descending (most recent first), with undated entries
// last. Canonical dates compare correctly as plain strings.
func lessByRelevance(a, b *string, today string) bool {
	ra, rb := relevanceRank(a, today), relevanceRank(b, today)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0:
		return *a < *b
	case 1:
		return *a > *b
	default:
		return false
	}
}

func relevanceRank(d *string, today string) int {
	if d == nil || *d == "" {
		return 2
	}
	if *d >= today {
		return 0
	}
	return 1
}

func lessByDateAsc(a, b *string) bool {
	aEmpty := a == nil || *a == ""
	bEmpty := b == nil || *b == ""
	if aEmpty || bEmpty {
		return !aEmpty && bEmpty
	}
	return *a < *b
}
