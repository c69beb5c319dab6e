package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"showscout/internal/domain/event"
)

func sgFixture() sgEvent {
	var raw sgEvent
	payload := `{
		"id": 6210001,
		"title": "New York Knicks at Boston Celtics",
		"url": "https://seatgeek.com/e/6210001",
		"type": "nba",
		"datetime_local": "2026-09-01T19:30:00",
		"datetime_utc": "2026-09-01T23:30:00",
		"score": 0.87,
		"stats": {"lowest_price": 55, "highest_price": 450},
		"taxonomies": [{"name": "sports"}, {"name": "basketball"}],
		"performers": [
			{"type": "nba", "image": "https://img.sg/small.jpg", "images": {"huge": "https://img.sg/huge.jpg"}}
		],
		"venue": {
			"name": "TD Garden",
			"name_v2": "TD Garden Arena",
			"address": "100 Legends Way",
			"city": "Boston",
			"state": "MA",
			"postal_code": "02114",
			"location": {"lat": 42.3662, "lon": -71.0621}
		}
	}`
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		panic(err)
	}
	return raw
}

func TestMapSeatgeekEvent(t *testing.T) {
	mapped := mapSeatgeekEvent(sgFixture())

	require.NotNil(t, mapped)
	require.Equal(t, "sg_6210001", mapped.ID)
	require.Equal(t, event.SourceSeatgeek, mapped.Source)
	require.Equal(t, event.TypeSports, mapped.EventType)
	require.Equal(t, "2026-09-01", mapped.StartDate)
	require.Equal(t, "19:30:00", *mapped.StartTime)
	require.Equal(t, event.DateConfirmed, mapped.DateStatus)
	require.Equal(t, "nba", *mapped.Genre)

	require.Equal(t, "TD Garden Arena", mapped.Venue.Name, "name_v2 is preferred")
	require.Equal(t, "Boston", mapped.Venue.City)
	require.Equal(t, 42.3662, mapped.Venue.Latitude)

	require.Equal(t, "https://img.sg/huge.jpg", *mapped.ImageURL)

	require.NotNil(t, mapped.PriceRange)
	require.Equal(t, 55.0, *mapped.PriceRange.Min)
	require.Equal(t, 450.0, *mapped.PriceRange.Max)
	require.Equal(t, "USD", mapped.PriceRange.Currency)

	require.NotNil(t, mapped.Popularity)
	require.Equal(t, 87.0, *mapped.Popularity, "score scales to a 0-100 popularity")
}

func TestMapSeatgeekEventDropsUnlocatable(t *testing.T) {
	t.Run("no venue", func(t *testing.T) {
		raw := sgFixture()
		raw.Venue = nil
		require.Nil(t, mapSeatgeekEvent(raw))
	})

	t.Run("no location", func(t *testing.T) {
		raw := sgFixture()
		raw.Venue.Location = nil
		require.Nil(t, mapSeatgeekEvent(raw))
	})

	t.Run("zero coordinates", func(t *testing.T) {
		raw := sgFixture()
		raw.Venue.Location.Lat = 0
		require.Nil(t, mapSeatgeekEvent(raw))
	})
}

func TestMapSeatgeekEventDateTBD(t *testing.T) {
	raw := sgFixture()
	raw.DatetimeTBD = true

	mapped := mapSeatgeekEvent(raw)
	require.Equal(t, event.DateTBD, mapped.DateStatus)
	require.Nil(t, mapped.StartTime, "a TBD datetime carries no start time")
	require.Equal(t, "2026-09-01", mapped.StartDate)
}

func TestSplitSgDatetime(t *testing.T) {
	date, clock := splitSgDatetime("2026-09-01T19:30:00", "")
	require.Equal(t, "2026-09-01", date)
	require.Equal(t, "19:30:00", *clock)

	date, clock = splitSgDatetime("", "2026-09-02T03:00:00")
	require.Equal(t, "2026-09-02", date)
	require.Equal(t, "03:00:00", *clock)

	date, clock = splitSgDatetime("2026-09-01", "")
	require.Equal(t, "2026-09-01", date)
	require.Nil(t, clock)
}

func TestSeatgeekSearchWithoutClientID(t *testing.T) {
	client := NewSeatgeekClient("")

	result, err := client.Search(context.Background(), event.SearchParams{Size: 20, Sort: event.SortDate})
	require.NoError(t, err)
	require.Empty(t, result.Events)
}

func TestSeatgeekSearchQuery(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(sgSearchResponse{})
	}))
	defer srv.Close()

	client := NewSeatgeekClient("client-123")
	client.BaseURL = srv.URL

	_, err := client.Search(context.Background(), event.SearchParams{
		Lat: 40.7, Lng: -74.0, Radius: 25,
		Keyword: "knicks", EventType: event.TypeSports,
		Page: 2, Size: 20, Sort: event.SortDate,
	})
	require.NoError(t, err)

	require.Equal(t, "client-123", gotQuery["client_id"])
	require.Equal(t, "25mi", gotQuery["range"])
	require.Equal(t, "3", gotQuery["page"], "SeatGeek pages are 1-indexed")
	require.Equal(t, "20", gotQuery["per_page"])
	require.Equal(t, "datetime_local.asc", gotQuery["sort"])
	require.Equal(t, "knicks", gotQuery["q"])
	require.Equal(t, "sports", gotQuery["type"])
}

func TestSeatgeekSearchDegradesOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewSeatgeekClient("client-123")
	client.BaseURL = srv.URL

	result, err := client.Search(context.Background(), event.SearchParams{Size: 20, Sort: event.SortDate})
	require.NoError(t, err, "SeatGeek failures degrade to empty results")
	require.Empty(t, result.Events)
}
