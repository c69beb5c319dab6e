package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"showscout/internal/domain/event"
)

func makeEvent(source event.Source, name, date, venueName string, lat, lng float64) event.Event {
	return event.Event{
		ID:        string(source) + "_" + name,
		Source:    source,
		SourceID:  name,
		Name:      name,
		EventType: event.TypeMusic,
		StartDate: date,
		Venue: event.Venue{
			Name:      venueName,
			City:      "New York",
			State:     "NY",
			Latitude:  lat,
			Longitude: lng,
		},
		DateStatus: event.DateConfirmed,
		URL:        "https://example.com/" + name,
	}
}

func TestIsDuplicateDateGate(t *testing.T) {
	a := makeEvent(event.SourceTicketmaster, "The Weeknd: After Hours", "2026-09-01", "MSG", 40.7505, -73.9934)
	b := makeEvent(event.SourceSeatgeek, "The Weeknd: After Hours", "2026-09-02", "MSG", 40.7505, -73.9934)

	require.False(t, isDuplicate(a, b), "different dates are never the same occurrence")

	b.StartDate = a.StartDate
	require.True(t, isDuplicate(a, b))
}

func TestIsDuplicateStrongNameNearby(t *testing.T) {
	// Same show listed with promotional noise, venues ~2 miles apart
	a := makeEvent(event.SourceTicketmaster, "The Weeknd: After Hours Tour", "2026-09-01", "Madison Square Garden", 40.7505, -73.9934)
	b := makeEvent(event.SourceWeb, "Weeknd After Hours", "2026-09-01", "MSG", 40.7790, -73.9880)

	require.True(t, isDuplicate(a, b))
}

func TestIsDuplicateStrongNameTooFarApart(t *testing.T) {
	// Identical generic names at unrelated venues ten miles apart stay
	// separate events.
	a := makeEvent(event.SourceTicketmaster, "Jazz Night", "2026-09-01", "Blue Note", 40.0000, -74.0000)
	b := makeEvent(event.SourceSeatgeek, "Jazz Night", "2026-09-01", "Village Vanguard", 40.1450, -74.0000)

	require.False(t, isDuplicate(a, b))
}

func TestIsDuplicateSameVenueLooseName(t *testing.T) {
	// Matching venue names carry a weak name match across a bad geocode
	a := makeEvent(event.SourceTicketmaster, "Hamilton", "2026-09-01", "Richard Rodgers Theatre", 40.7590, -73.9870)
	b := makeEvent(event.SourceSeatgeek, "Hamilton on Broadway Official", "2026-09-01", "Richard Rodgers Theatre", 41.2000, -74.5000)

	require.True(t, isDuplicate(a, b))
}

func TestIsDuplicateCoLocatedModerateName(t *testing.T) {
	// Same address, moderately similar names that clear none of the
	// strong-name bars
	a := makeEvent(event.SourceTicketmaster, "Chicago Band Live Concert", "2026-09-01", "Beacon Theatre", 40.7799, -73.9819)
	b := makeEvent(event.SourceSeatgeek, "Chicago Band Showcase", "2026-09-01", "Beacon", 40.7800, -73.9820)

	require.True(t, isDuplicate(a, b))
}

func TestIsDuplicateUnrelatedEvents(t *testing.T) {
	a := makeEvent(event.SourceTicketmaster, "Coldplay", "2026-09-01", "MetLife Stadium", 40.8135, -74.0745)
	b := makeEvent(event.SourceSeatgeek, "New York Knicks vs Boston Celtics", "2026-09-01", "Madison Square Garden", 40.7505, -73.9934)

	require.False(t, isDuplicate(a, b))
}

func TestIsDuplicateSymmetric(t *testing.T) {
	pairs := [][2]event.Event{
		{
			makeEvent(event.SourceTicketmaster, "The Weeknd: After Hours Tour", "2026-09-01", "MSG", 40.7505, -73.9934),
			makeEvent(event.SourceWeb, "Weeknd After Hours", "2026-09-01", "MSG", 40.7505, -73.9934),
		},
		{
			makeEvent(event.SourceTicketmaster, "Jazz Night", "2026-09-01", "Blue Note", 40.0000, -74.0000),
			makeEvent(event.SourceSeatgeek, "Jazz Night", "2026-09-01", "Smalls", 40.1450, -74.0000),
		},
		{
			makeEvent(event.SourceTicketmaster, "Hamilton", "2026-09-01", "Richard Rodgers Theatre", 40.7590, -73.9870),
			makeEvent(event.SourceSeatgeek, "Wicked", "2026-09-01", "Gershwin Theatre", 40.7625, -73.9854),
		},
	}

	for _, pair := range pairs {
		require.Equal(t, isDuplicate(pair[0], pair[1]), isDuplicate(pair[1], pair[0]),
			"classifier must be symmetric for %q vs %q", pair[0].Name, pair[1].Name)
	}
}
