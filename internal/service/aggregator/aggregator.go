// Package aggregator orchestrates event searches across all upstream
// providers and produces one deduplicated, sorted, paginated feed.
package aggregator

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"showscout/internal/domain/event"
	"showscout/internal/service/dedup"
)

// MaxFetchSize caps how many records are requested from each source per
// aggregation call.
const MaxFetchSize = 200

// idPrefixes maps composite-id prefixes to the provider that owns them
var idPrefixes = map[string]event.Source{
	"tm":  event.SourceTicketmaster,
	"sg":  event.SourceSeatgeek,
	"web": event.SourceWeb,
}

// Aggregator fans a search out to every registered source adapter,
// merges the raw results through deduplication and returns the requested
// page. Each call is independent and reentrant; the aggregator holds no
// per-call state.
type Aggregator struct {
	adapters []event.SourceAdapter
}

// NewAggregator creates an aggregator over the given source adapters.
// Adapter order is significant: earlier adapters win deduplication ties,
// so pass them in trust order.
func NewAggregator(adapters ...event.SourceAdapter) *Aggregator {
	return &Aggregator{adapters: adapters}
}

// SearchAllSources fetches enough records from every source to fill the
// requested page after dedup losses, then merges, dedupes, sorts and
// slices. Total reflects the deduplicated count across all sources.
//
// Native source pagination windows don't align post-dedup, so every call
// re-fetches from each source's page 0 up through fetchSize records.
func (a *Aggregator) SearchAllSources(ctx context.Context, params event.SearchParams) (event.AggregatedResult, error) {
	fetchSize := (params.Page + 1) * params.Size
	if fetchSize > MaxFetchSize {
		fetchSize = MaxFetchSize
	}

	fetchParams := params
	fetchParams.Page = 0
	fetchParams.Size = fetchSize

	// Fan out to all sources and join before dedup starts; pairwise
	// comparison spans sources, so no partial processing is possible.
	results := make([]event.SearchResult, len(a.adapters))

	var wg sync.WaitGroup
	for i, adapter := range a.adapters {
		wg.Add(1)
		go func(i int, adapter event.SourceAdapter) {
			defer wg.Done()
			result, err := adapter.Search(ctx, fetchParams)
			if err != nil {
				// A failing source is unavailable for this call, not
				// fatal for the aggregation.
				log.Error().Err(err).
					Str("source", string(adapter.Name())).
					Msg("Source search failed, continuing without it")
				results[i] = event.SearchResult{}
				return
			}
			results[i] = result
		}(i, adapter)
	}
	wg.Wait()

	breakdown := event.SourceBreakdown{}
	eventsBySource := make([][]event.Event, 0, len(a.adapters))
	for i, adapter := range a.adapters {
		eventsBySource = append(eventsBySource, results[i].Events)
		switch adapter.Name() {
		case event.SourceTicketmaster:
			breakdown.Ticketmaster = len(results[i].Events)
		case event.SourceSeatgeek:
			breakdown.Seatgeek = len(results[i].Events)
		}
	}

	log.Info().
		Int("ticketmaster", breakdown.Ticketmaster).
		Int("seatgeek", breakdown.Seatgeek).
		Msg("Raw results from all sources")

	deduped, duplicatesRemoved := dedup.DeduplicateAllSources(eventsBySource)
	breakdown.DuplicatesRemoved = duplicatesRemoved

	sorted := SortEvents(deduped, params.Sort)
	paged := Paginate(sorted, params.Page, params.Size)

	return event.AggregatedResult{
		Events:  paged,
		Total:   len(deduped),
		Sources: breakdown,
	}, nil
}

// GetEventByID resolves one record by its composite id. The prefix
// selects which adapter to call; this path never touches deduplication.
// Ids with no recognizable prefix are simply unknown: nil event, nil
// error, same as an adapter miss.
func (a *Aggregator) GetEventByID(ctx context.Context, id string) (*event.Event, error) {
	prefix, sourceID, ok := strings.Cut(id, "_")
	if !ok {
		return nil, nil
	}

	source, ok := idPrefixes[prefix]
	if !ok {
		return nil, nil
	}

	for _, adapter := range a.adapters {
		if adapter.Name() == source {
			return adapter.GetByID(ctx, sourceID)
		}
	}
	return nil, nil
}
