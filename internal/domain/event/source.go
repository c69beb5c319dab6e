package event

import "context"

// SortKey selects the ordering of an aggregated result set
type SortKey string

const (
	SortDate      SortKey = "date"
	SortRelevance SortKey = "relevance"
	SortName      SortKey = "name"
)

// SearchParams carries a validated event search. Callers own validation
// (coordinate bounds, radius bounds, page/size bounds); adapters and the
// aggregator assume the values are sane.
type SearchParams struct {
	Lat    float64
	Lng    float64
	Radius float64 // miles

	Keyword   string
	EventType EventType

	// UTC datetime bounds in RFC 3339 form, empty when unbounded
	StartDateTime string
	EndDateTime   string

	Page int // zero-based
	Size int
	Sort SortKey
}

// SearchResult is one source's raw answer to a search: the mapped
// records plus the provider's own total for the query.
type SearchResult struct {
	Events []Event
	Total  int
}

// SourceBreakdown reports per-source raw counts for one aggregation,
// taken before deduplication, plus the number of records dedup removed.
type SourceBreakdown struct {
	Ticketmaster      int `json:"ticketmaster"`
	Seatgeek          int `json:"seatgeek"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
}

// AggregatedResult is the final page produced by the aggregator. Total
// is the deduplicated count across all sources, not any single source's
// raw total.
type AggregatedResult struct {
	Events  []Event
	Total   int
	Sources SourceBreakdown
}

// SourceAdapter translates one upstream provider's API into canonical
// event records. Implementations must drop records lacking resolvable
// venue coordinates, and must return an empty result rather than an
// error for "no results".
type SourceAdapter interface {
	// Name returns the provider name this adapter serves
	Name() Source

	// Search runs a search against the provider. A hard provider
	// failure may surface as an error; the aggregator treats it as the
	// source being unavailable for this call.
	Search(ctx context.Context, params SearchParams) (SearchResult, error)

	// GetByID resolves a single event by its source-local id. A nil
	// event with nil error means the provider doesn't know the id.
	GetByID(ctx context.Context, sourceID string) (*Event, error)
}
