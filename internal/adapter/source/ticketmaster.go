// Package source implements the upstream provider adapters. Each
// adapter owns the translation from its provider's schema into canonical
// event records, including the provider-specific category taxonomy.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"showscout/internal/domain/event"
)

const ticketmasterBaseURL = "https://app.ticketmaster.com/discovery/v2"

// TicketmasterClient handles interactions with the Ticketmaster
// Discovery v2 API.
type TicketmasterClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

// NewTicketmasterClient creates a new Ticketmaster adapter
func NewTicketmasterClient(apiKey string) *TicketmasterClient {
	return &TicketmasterClient{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: ticketmasterBaseURL,
		APIKey:  apiKey,
	}
}

// tmClassifications maps the unified event types onto Ticketmaster
// classification names. Owned by the adapter so the mapping stays
// independently testable.
var tmClassifications = map[event.EventType]string{
	event.TypeMusic:   "music",
	event.TypeSports:  "sports",
	event.TypeTheatre: "theatre",
	event.TypeMusical: "theatre",
	event.TypeComedy:  "comedy",
	event.TypeFamily:  "family",
	event.TypeFilm:    "film",
}

// tmSegments maps Ticketmaster segment names back onto unified types
var tmSegments = map[string]event.EventType{
	"Music":          event.TypeMusic,
	"Sports":         event.TypeSports,
	"Arts & Theatre": event.TypeTheatre,
	"Film":           event.TypeFilm,
	"Comedy":         event.TypeComedy,
	"Family":         event.TypeFamily,
	"Miscellaneous":  event.TypeOther,
	"Undefined":      event.TypeOther,
}

// Response shapes for the Discovery API

type tmSearchResponse struct {
	Embedded *struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
	Page struct {
		TotalElements int `json:"totalElements"`
	} `json:"page"`
}

type tmEvent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Info       string `json:"info"`
	PleaseNote string `json:"pleaseNote"`
	Images     []struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"images"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
			DateTBD   bool   `json:"dateTBD"`
			DateTBA   bool   `json:"dateTBA"`
		} `json:"start"`
		End *struct {
			LocalDate string `json:"localDate"`
		} `json:"end"`
		Timezone string `json:"timezone"`
	} `json:"dates"`
	Classifications []tmClassification `json:"classifications"`
	PriceRanges     []struct {
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Currency string  `json:"currency"`
	} `json:"priceRanges"`
	Embedded *struct {
		Venues []tmVenue `json:"venues"`
	} `json:"_embedded"`
}

type tmClassification struct {
	Primary bool `json:"primary"`
	Segment *struct {
		Name string `json:"name"`
	} `json:"segment"`
	Genre *struct {
		Name string `json:"name"`
	} `json:"genre"`
	SubGenre *struct {
		Name string `json:"name"`
	} `json:"subGenre"`
}

type tmVenue struct {
	Name       string `json:"name"`
	PostalCode string `json:"postalCode"`
	City       *struct {
		Name string `json:"name"`
	} `json:"city"`
	State *struct {
		Name      string `json:"name"`
		StateCode string `json:"stateCode"`
	} `json:"state"`
	Address *struct {
		Line1 string `json:"line1"`
	} `json:"address"`
	Location *struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"location"`
}

// Name returns the provider this adapter serves
func (c *TicketmasterClient) Name() event.Source {
	return event.SourceTicketmaster
}

// Search queries the Discovery API and maps the results into canonical
// records. A non-OK response is a hard error; the aggregator decides
// how to degrade.
func (c *TicketmasterClient) Search(ctx context.Context, params event.SearchParams) (event.SearchResult, error) {
	query := url.Values{}
	query.Set("apikey", c.APIKey)
	query.Set("latlong", fmt.Sprintf("%v,%v", params.Lat, params.Lng))
	query.Set("radius", strconv.Itoa(int(params.Radius)))
	query.Set("unit", "miles")
	query.Set("size", strconv.Itoa(params.Size))
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("sort", tmSortParam(params.Sort))

	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}
	if params.EventType != "" {
		if classification, ok := tmClassifications[params.EventType]; ok {
			query.Set("classificationName", classification)
		}
	}
	if params.StartDateTime != "" {
		query.Set("startDateTime", params.StartDateTime)
	}
	if params.EndDateTime != "" {
		query.Set("endDateTime", params.EndDateTime)
	}

	requestURL := fmt.Sprintf("%s/events.json?%s", c.BaseURL, query.Encode())
	log.Info().
		Str("url", strings.ReplaceAll(requestURL, c.APIKey, "***")).
		Msg("Calling Ticketmaster API")

	var data tmSearchResponse
	if err := c.getJSON(ctx, requestURL, &data); err != nil {
		return event.SearchResult{}, err
	}

	var events []event.Event
	if data.Embedded != nil {
		for _, raw := range data.Embedded.Events {
			if mapped := mapTicketmasterEvent(raw); mapped != nil {
				events = append(events, *mapped)
			}
		}
	}

	return event.SearchResult{
		Events: events,
		Total:  data.Page.TotalElements,
	}, nil
}

// GetByID fetches a single event by its Ticketmaster id. Unknown ids
// resolve to nil rather than an error.
func (c *TicketmasterClient) GetByID(ctx context.Context, sourceID string) (*event.Event, error) {
	requestURL := fmt.Sprintf("%s/events/%s.json?apikey=%s", c.BaseURL, url.PathEscape(sourceID), url.QueryEscape(c.APIKey))

	log.Info().Str("sourceId", sourceID).Msg("Fetching single Ticketmaster event")

	var raw tmEvent
	if err := c.getJSON(ctx, requestURL, &raw); err != nil {
		log.Warn().Err(err).Str("sourceId", sourceID).Msg("Ticketmaster single-event fetch failed")
		return nil, nil
	}
	return mapTicketmasterEvent(raw), nil
}

func (c *TicketmasterClient) getJSON(ctx context.Context, requestURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Ticketmaster API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ticketmaster API returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Ticketmaster API response: %w", err)
	}
	return nil
}

// mapTicketmasterEvent converts one raw Discovery event into a canonical
// record, or nil when the venue has no resolvable coordinates.
func mapTicketmasterEvent(tm tmEvent) *event.Event {
	if tm.Embedded == nil || len(tm.Embedded.Venues) == 0 {
		return nil
	}
	venue := tm.Embedded.Venues[0]
	if venue.Location == nil || venue.Location.Latitude == "" || venue.Location.Longitude == "" {
		return nil
	}

	lat, latErr := strconv.ParseFloat(venue.Location.Latitude, 64)
	lng, lngErr := strconv.ParseFloat(venue.Location.Longitude, 64)
	if latErr != nil || lngErr != nil {
		return nil
	}

	primary := primaryClassification(tm.Classifications)

	city := "Unknown"
	if venue.City != nil && venue.City.Name != "" {
		city = venue.City.Name
	}
	state := "Unknown"
	if venue.State != nil {
		if venue.State.StateCode != "" {
			state = venue.State.StateCode
		} else if venue.State.Name != "" {
			state = venue.State.Name
		}
	}

	mapped := event.Event{
		ID:          "tm_" + tm.ID,
		Source:      event.SourceTicketmaster,
		SourceID:    tm.ID,
		Name:        tm.Name,
		Description: firstNonEmpty(tm.Info, tm.PleaseNote),
		EventType:   tmEventType(tm.Classifications),

		StartDate:  tm.Dates.Start.LocalDate,
		StartTime:  optional(tm.Dates.Start.LocalTime),
		Timezone:   optional(tm.Dates.Timezone),
		DateStatus: tmDateStatus(tm),

		Venue: event.Venue{
			Name:       venue.Name,
			City:       city,
			State:      state,
			PostalCode: optional(venue.PostalCode),
			Latitude:   lat,
			Longitude:  lng,
		},

		ImageURL: tmBestImage(tm),
		URL:      tm.URL,
	}

	if venue.Address != nil {
		mapped.Venue.Address = optional(venue.Address.Line1)
	}
	if tm.Dates.End != nil {
		mapped.EndDate = optional(tm.Dates.End.LocalDate)
	}
	if primary != nil {
		if primary.Genre != nil {
			mapped.Genre = optional(primary.Genre.Name)
		}
		if primary.SubGenre != nil {
			mapped.SubGenre = optional(primary.SubGenre.Name)
		}
	}

	mapped.Images = make([]event.Image, 0, len(tm.Images))
	for _, img := range tm.Images {
		mapped.Images = append(mapped.Images, event.Image{
			URL:    img.URL,
			Width:  img.Width,
			Height: img.Height,
		})
	}

	if len(tm.PriceRanges) > 0 {
		pr := tm.PriceRanges[0]
		minPrice := pr.Min
		maxPrice := pr.Max
		mapped.PriceRange = &event.PriceRange{
			Min:      &minPrice,
			Max:      &maxPrice,
			Currency: pr.Currency,
		}
	}

	return &mapped
}

func primaryClassification(classifications []tmClassification) *tmClassification {
	for i := range classifications {
		if classifications[i].Primary {
			return &classifications[i]
		}
	}
	if len(classifications) > 0 {
		return &classifications[0]
	}
	return nil
}

func tmEventType(classifications []tmClassification) event.EventType {
	primary := primaryClassification(classifications)
	if primary == nil {
		return event.TypeOther
	}

	if primary.Genre != nil && strings.Contains(strings.ToLower(primary.Genre.Name), "musical") {
		return event.TypeMusical
	}

	segmentName := "Undefined"
	if primary.Segment != nil && primary.Segment.Name != "" {
		segmentName = primary.Segment.Name
	}
	if mapped, ok := tmSegments[segmentName]; ok {
		return mapped
	}
	return event.TypeOther
}

func tmDateStatus(tm tmEvent) event.DateStatus {
	if tm.Dates.Start.DateTBD {
		return event.DateTBD
	}
	if tm.Dates.Start.DateTBA {
		return event.DateTBA
	}
	return event.DateConfirmed
}

// tmBestImage picks the largest image by area
func tmBestImage(tm tmEvent) *string {
	if len(tm.Images) == 0 {
		return nil
	}
	best := tm.Images[0]
	for _, img := range tm.Images[1:] {
		if img.Width*img.Height > best.Width*best.Height {
			best = img
		}
	}
	return &best.URL
}

func tmSortParam(key event.SortKey) string {
	switch key {
	case event.SortDate:
		return "date,asc"
	case event.SortRelevance:
		return "relevance,desc"
	case event.SortName:
		return "name,asc"
	default:
		return "date,asc"
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}
