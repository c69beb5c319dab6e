package aggregator

import (
	"sort"

	"showscout/internal/domain/event"
)

// SortEvents returns a stably sorted copy of events ordered by the
// requested key. An unknown key leaves the order untouched — callers get
// permissive fallback behavior, not an error.
func SortEvents(events []event.Event, key event.SortKey) []event.Event {
	sorted := make([]event.Event, len(events))
	copy(sorted, events)

	switch key {
	case event.SortDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].StartDate != sorted[j].StartDate {
				return sorted[i].StartDate < sorted[j].StartDate
			}
			// Missing times sort as empty strings, i.e. first
			return strOrEmpty(sorted[i].StartTime) < strOrEmpty(sorted[j].StartTime)
		})
	case event.SortName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	case event.SortRelevance:
		sort.SliceStable(sorted, func(i, j int) bool {
			return popularityOrZero(sorted[i]) > popularityOrZero(sorted[j])
		})
	}

	return sorted
}

// Paginate slices out the requested zero-based page from the full
// sorted, deduplicated list. Pages past the end are empty, never an
// error.
func Paginate(events []event.Event, page, size int) []event.Event {
	start := page * size
	if start >= len(events) {
		return []event.Event{}
	}
	end := start + size
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func popularityOrZero(e event.Event) float64 {
	if e.Popularity == nil {
		return 0
	}
	return *e.Popularity
}
