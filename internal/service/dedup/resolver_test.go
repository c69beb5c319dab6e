package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"showscout/internal/domain/event"
)

func strPtr(s string) *string { return &s }

func TestPickBestEventSourcePriority(t *testing.T) {
	tm := makeEvent(event.SourceTicketmaster, "Coldplay", "2026-09-01", "MetLife Stadium", 40.81, -74.07)
	sg := makeEvent(event.SourceSeatgeek, "Coldplay", "2026-09-01", "MetLife Stadium", 40.81, -74.07)
	web := makeEvent(event.SourceWeb, "Coldplay", "2026-09-01", "MetLife Stadium", 40.81, -74.07)

	// A richer record from a less trusted source still loses
	web.Description = strPtr("An evening with Coldplay")
	web.ImageURL = strPtr("https://example.com/img.jpg")
	web.StartTime = strPtr("19:30:00")

	require.Equal(t, tm.ID, pickBestEvent(tm, web).ID)
	require.Equal(t, tm.ID, pickBestEvent(web, tm).ID)
	require.Equal(t, sg.ID, pickBestEvent(web, sg).ID)
	require.Equal(t, tm.ID, pickBestEvent(sg, tm).ID)
}

func TestPickBestEventCompletenessTieBreak(t *testing.T) {
	sparse := makeEvent(event.SourceSeatgeek, "Coldplay", "2026-09-01", "MetLife Stadium", 40.81, -74.07)
	rich := makeEvent(event.SourceSeatgeek, "Coldplay: Music of the Spheres", "2026-09-01", "MetLife Stadium", 40.81, -74.07)
	rich.ImageURL = strPtr("https://example.com/img.jpg")
	rich.StartTime = strPtr("19:30:00")

	require.Equal(t, rich.ID, pickBestEvent(sparse, rich).ID)
	require.Equal(t, rich.ID, pickBestEvent(rich, sparse).ID)
}

func TestPickBestEventFullTieKeepsFirst(t *testing.T) {
	first := makeEvent(event.SourceSeatgeek, "Coldplay", "2026-09-01", "MetLife Stadium", 40.81, -74.07)
	second := makeEvent(event.SourceSeatgeek, "Coldplay Concert", "2026-09-01", "MetLife", 40.81, -74.07)

	require.Equal(t, first.ID, pickBestEvent(first, second).ID)
	require.Equal(t, second.ID, pickBestEvent(second, first).ID)
}

func TestCompleteness(t *testing.T) {
	e := makeEvent(event.SourceTicketmaster, "Coldplay", "2026-09-01", "MetLife Stadium", 40.81, -74.07)
	require.Equal(t, 0, completeness(e))

	e.ImageURL = strPtr("https://example.com/img.jpg")
	e.StartTime = strPtr("19:30:00")
	require.Equal(t, 2, completeness(e))

	e.Description = strPtr("A concert")
	minPrice := 49.50
	e.PriceRange = &event.PriceRange{Min: &minPrice, Currency: "USD"}
	require.Equal(t, 4, completeness(e))
}
