package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"showscout/internal/domain/event"
	"showscout/internal/service/aggregator"
)

func aiEvent(source event.Source, id, name string) event.Event {
	return event.Event{
		ID:        string(source)[:2] + "_" + id,
		Source:    source,
		SourceID:  id,
		Name:      name,
		EventType: event.TypeMusic,
		StartDate: "2026-09-01",
		Venue: event.Venue{
			Name:      "Venue",
			City:      "New York",
			State:     "NY",
			Latitude:  40.7,
			Longitude: -74.0,
		},
		DateStatus: event.DateConfirmed,
		URL:        "https://example.com/" + id,
	}
}

func TestSearchNotConfigured(t *testing.T) {
	searcher := NewSearcher("", aggregator.NewAggregator())

	_, err := searcher.Search(context.Background(), "concerts tonight", 40.7, -74.0, 25)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestMergeResults(t *testing.T) {
	orig := event.AggregatedResult{
		Events: []event.Event{aiEvent(event.SourceTicketmaster, "1", "Coldplay")},
		Total:  1,
		Sources: event.SourceBreakdown{
			Ticketmaster: 1,
		},
	}
	broader := event.AggregatedResult{
		Events: []event.Event{
			aiEvent(event.SourceTicketmaster, "1", "Coldplay"),
			aiEvent(event.SourceSeatgeek, "2", "Hamilton"),
		},
		Total: 2,
		Sources: event.SourceBreakdown{
			Ticketmaster: 1,
			Seatgeek:     1,
		},
	}

	merged := mergeResults(orig, broader, 20)

	require.Len(t, merged.Events, 2, "already-present events are not added twice")
	require.Equal(t, 2, merged.Total)
	require.Equal(t, 1, merged.Sources.Seatgeek)
}

func TestMergeResultsRespectsLimit(t *testing.T) {
	orig := event.AggregatedResult{
		Events: []event.Event{aiEvent(event.SourceTicketmaster, "1", "Coldplay")},
		Total:  1,
	}
	broader := event.AggregatedResult{
		Events: []event.Event{
			aiEvent(event.SourceSeatgeek, "2", "Hamilton"),
			aiEvent(event.SourceSeatgeek, "3", "Wicked"),
		},
		Total: 2,
	}

	merged := mergeResults(orig, broader, 2)
	require.Len(t, merged.Events, 2)
}

func TestMergeWebEvents(t *testing.T) {
	result := event.AggregatedResult{
		Events: []event.Event{aiEvent(event.SourceTicketmaster, "1", "Coldplay: Music of the Spheres")},
		Total:  1,
	}
	webEvents := []event.Event{
		aiEvent(event.SourceWeb, "w1", "Coldplay"),
		aiEvent(event.SourceWeb, "w2", "Secret Loft Show"),
	}

	merged := mergeWebEvents(result, webEvents)

	require.Len(t, merged.Events, 2, "name-covered web finds are dropped")
	require.Equal(t, 2, merged.Total)
	require.Equal(t, "Secret Loft Show", merged.Events[1].Name)
}

func TestNameCovered(t *testing.T) {
	existing := []string{"coldplay: music of the spheres", "hamilton"}

	require.True(t, nameCovered("coldplay", existing))
	require.True(t, nameCovered("hamilton the musical on broadway", existing))
	require.False(t, nameCovered("secret loft show", existing))
}
