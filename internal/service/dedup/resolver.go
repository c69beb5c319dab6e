package dedup

import "showscout/internal/domain/event"

// sourcePriority ranks providers by how much we trust their listings.
// Unknown sources rank below everything.
var sourcePriority = map[event.Source]int{
	event.SourceTicketmaster: 3,
	event.SourceSeatgeek:     2,
	event.SourceWeb:          1,
}

// pickBestEvent resolves a duplicate pair to its canonical survivor.
// Higher source trust wins outright; between equally trusted sources the
// richer record wins, and a completeness tie keeps the first-seen record.
func pickBestEvent(a, b event.Event) event.Event {
	if secondWins(a, b) {
		return b
	}
	return a
}

// secondWins reports whether b strictly beats a. Ties keep a.
func secondWins(a, b event.Event) bool {
	pa := sourcePriority[a.Source]
	pb := sourcePriority[b.Source]
	if pa != pb {
		return pb > pa
	}
	return completeness(b) > completeness(a)
}

// completeness counts the optional fields a record actually carries
func completeness(e event.Event) int {
	score := 0
	if e.ImageURL != nil {
		score++
	}
	if e.PriceRange != nil {
		score++
	}
	if e.Description != nil {
		score++
	}
	if e.StartTime != nil {
		score++
	}
	return score
}
