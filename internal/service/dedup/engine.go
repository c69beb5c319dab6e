// Package dedup collapses duplicate listings reported by multiple
// upstream providers into a single canonical result set.
package dedup

import (
	"github.com/rs/zerolog/log"

	"showscout/internal/domain/event"
)

// DeduplicateAllSources merges per-source result lists, removing records
// that describe the same occurrence. Lists are flattened in the order
// given, so ties default toward earlier sources; callers pass sources in
// trust order (Ticketmaster before SeatGeek before web).
//
// The pass is an O(n²) pairwise cluster collapse: each unremoved index i
// anchors a scan of every later unremoved index j, folding anything that
// matches the evolving "best" record into one cluster. The returned
// count is the number of indices removed, a global figure not attributed
// per source.
func DeduplicateAllSources(eventsBySource [][]event.Event) ([]event.Event, int) {
	total := 0
	for _, list := range eventsBySource {
		total += len(list)
	}
	allEvents := make([]event.Event, 0, total)
	for _, list := range eventsBySource {
		allEvents = append(allEvents, list...)
	}

	removed := make(map[int]bool)
	kept := make([]event.Event, 0, len(allEvents))

	for i := 0; i < len(allEvents); i++ {
		if removed[i] {
			continue
		}

		best := allEvents[i]

		for j := i + 1; j < len(allEvents); j++ {
			if removed[j] {
				continue
			}

			if isDuplicate(best, allEvents[j]) {
				if secondWins(best, allEvents[j]) {
					removed[i] = true
					best = allEvents[j]
				}
				removed[j] = true
			}
		}

		if !removed[i] {
			kept = append(kept, best)
		}
	}

	if len(removed) > 0 {
		log.Info().
			Int("duplicatesRemoved", len(removed)).
			Int("keptCount", len(kept)).
			Msg("Deduplication complete")
	}

	return kept, len(removed)
}
