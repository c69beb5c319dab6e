package source

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"showscout/internal/domain/event"
)

const seatgeekBaseURL = "https://api.seatgeek.com/2"

// SeatgeekClient handles interactions with the SeatGeek Platform API.
// The client id is optional: without one the adapter reports empty
// results instead of erroring, so a missing secondary credential only
// shows up as a zero count for the source.
type SeatgeekClient struct {
	HTTPClient *http.Client
	BaseURL    string
	ClientID   string
}

// NewSeatgeekClient creates a new SeatGeek adapter
func NewSeatgeekClient(clientID string) *SeatgeekClient {
	return &SeatgeekClient{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL:  seatgeekBaseURL,
		ClientID: clientID,
	}
}

// sgTypes maps the unified event types onto SeatGeek taxonomy slugs
var sgTypes = map[event.EventType]string{
	event.TypeMusic:   "concert",
	event.TypeSports:  "sports",
	event.TypeTheatre: "theater",
	event.TypeMusical: "theater",
	event.TypeComedy:  "comedy",
	event.TypeFamily:  "family",
	event.TypeFilm:    "film",
}

// sgTaxonomies maps SeatGeek taxonomy names back onto unified types
var sgTaxonomies = map[string]event.EventType{
	"concert":                     event.TypeMusic,
	"music_festival":              event.TypeMusic,
	"classical":                   event.TypeMusic,
	"sports":                      event.TypeSports,
	"baseball":                    event.TypeSports,
	"basketball":                  event.TypeSports,
	"football":                    event.TypeSports,
	"hockey":                      event.TypeSports,
	"soccer":                      event.TypeSports,
	"mma":                         event.TypeSports,
	"wrestling":                   event.TypeSports,
	"golf":                        event.TypeSports,
	"tennis":                      event.TypeSports,
	"auto_racing":                 event.TypeSports,
	"horse_racing":                event.TypeSports,
	"theater":                     event.TypeTheatre,
	"dance_performance_tour":      event.TypeTheatre,
	"broadway_tickets_national":   event.TypeMusical,
	"musical":                     event.TypeMusical,
	"comedy":                      event.TypeComedy,
	"family":                      event.TypeFamily,
	"circus":                      event.TypeFamily,
	"film":                        event.TypeFilm,
	"literary":                    event.TypeOther,
}

// Response shapes for the Platform API

type sgSearchResponse struct {
	Events []sgEvent `json:"events"`
	Meta   struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type sgEvent struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	DatetimeLocal string  `json:"datetime_local"`
	DatetimeUTC   string  `json:"datetime_utc"`
	DatetimeTBD   bool    `json:"datetime_tbd"`
	Score         float64 `json:"score"`
	Stats         struct {
		LowestPrice  *float64 `json:"lowest_price"`
		HighestPrice *float64 `json:"highest_price"`
	} `json:"stats"`
	Taxonomies []struct {
		Name string `json:"name"`
	} `json:"taxonomies"`
	Performers []sgPerformer `json:"performers"`
	Venue      *sgVenue      `json:"venue"`
}

type sgPerformer struct {
	Type   string `json:"type"`
	Image  string `json:"image"`
	Images *struct {
		Huge string `json:"huge"`
	} `json:"images"`
}

type sgVenue struct {
	Name       string  `json:"name"`
	NameV2     string  `json:"name_v2"`
	Address    *string `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode *string `json:"postal_code"`
	Location   *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
}

// Name returns the provider this adapter serves
func (c *SeatgeekClient) Name() event.Source {
	return event.SourceSeatgeek
}

// Search queries the Platform API and maps the results into canonical
// records. Upstream failures degrade to an empty result so the other
// sources still answer — availability over completeness.
func (c *SeatgeekClient) Search(ctx context.Context, params event.SearchParams) (event.SearchResult, error) {
	if c.ClientID == "" {
		log.Debug().Msg("SEATGEEK_CLIENT_ID not configured, skipping SeatGeek search")
		return event.SearchResult{}, nil
	}

	query := url.Values{}
	query.Set("client_id", c.ClientID)
	query.Set("lat", fmt.Sprintf("%v", params.Lat))
	query.Set("lon", fmt.Sprintf("%v", params.Lng))
	query.Set("range", fmt.Sprintf("%dmi", int(params.Radius)))
	query.Set("per_page", strconv.Itoa(params.Size))
	// SeatGeek pages are 1-indexed
	query.Set("page", strconv.Itoa(params.Page+1))
	query.Set("sort", sgSortParam(params.Sort))

	if params.Keyword != "" {
		query.Set("q", params.Keyword)
	}
	if params.EventType != "" {
		if sgType, ok := sgTypes[params.EventType]; ok {
			query.Set("type", sgType)
		}
	}
	if params.StartDateTime != "" {
		query.Set("datetime_utc.gte", params.StartDateTime)
	}
	if params.EndDateTime != "" {
		query.Set("datetime_utc.lte", params.EndDateTime)
	}

	requestURL := fmt.Sprintf("%s/events?%s", c.BaseURL, query.Encode())
	log.Info().
		Str("url", strings.ReplaceAll(requestURL, c.ClientID, "***")).
		Msg("Calling SeatGeek API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return event.SearchResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("SeatGeek API error")
		return event.SearchResult{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("SeatGeek API error")
		return event.SearchResult{}, nil
	}

	var data sgSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Error().Err(err).Msg("Failed to decode SeatGeek API response")
		return event.SearchResult{}, nil
	}

	var events []event.Event
	for _, raw := range data.Events {
		if mapped := mapSeatgeekEvent(raw); mapped != nil {
			events = append(events, *mapped)
		}
	}

	return event.SearchResult{
		Events: events,
		Total:  data.Meta.Total,
	}, nil
}

// GetByID fetches a single event by its SeatGeek id
func (c *SeatgeekClient) GetByID(ctx context.Context, sourceID string) (*event.Event, error) {
	if c.ClientID == "" {
		return nil, nil
	}

	requestURL := fmt.Sprintf("%s/events/%s?client_id=%s", c.BaseURL, url.PathEscape(sourceID), url.QueryEscape(c.ClientID))
	log.Info().Str("sourceId", sourceID).Msg("Fetching single SeatGeek event")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("sourceId", sourceID).Msg("SeatGeek single-event fetch failed")
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("sourceId", sourceID).Msg("SeatGeek single-event fetch failed")
		return nil, nil
	}

	var raw sgEvent
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode SeatGeek API response: %w", err)
	}
	return mapSeatgeekEvent(raw), nil
}

// mapSeatgeekEvent converts one raw SeatGeek event into a canonical
// record, or nil when the venue has no resolvable coordinates.
func mapSeatgeekEvent(sg sgEvent) *event.Event {
	venue := sg.Venue
	if venue == nil || venue.Location == nil || venue.Location.Lat == 0 || venue.Location.Lon == 0 {
		return nil
	}

	localDate, localTime := splitSgDatetime(sg.DatetimeLocal, sg.DatetimeUTC)

	venueName := venue.Name
	if venue.NameV2 != "" {
		venueName = venue.NameV2
	}

	mapped := event.Event{
		ID:          "sg_" + strconv.FormatInt(sg.ID, 10),
		Source:      event.SourceSeatgeek,
		SourceID:    strconv.FormatInt(sg.ID, 10),
		Name:        sg.Title,
		Description: optional(sg.Description),
		EventType:   sgEventType(sg),

		StartDate:  localDate,
		DateStatus: event.DateConfirmed,

		Venue: event.Venue{
			Name:       venueName,
			Address:    venue.Address,
			City:       venue.City,
			State:      venue.State,
			PostalCode: venue.PostalCode,
			Latitude:   venue.Location.Lat,
			Longitude:  venue.Location.Lon,
		},

		ImageURL: sgBestImage(sg.Performers),
		Images:   []event.Image{},
		URL:      sg.URL,
	}

	if sg.DatetimeTBD {
		mapped.DateStatus = event.DateTBD
	} else {
		mapped.StartTime = localTime
	}

	if len(sg.Performers) > 0 && sg.Performers[0].Type != "" {
		mapped.Genre = optional(sg.Performers[0].Type)
	}

	if sg.Stats.LowestPrice != nil {
		mapped.PriceRange = &event.PriceRange{
			Min:      sg.Stats.LowestPrice,
			Max:      sg.Stats.HighestPrice,
			Currency: "USD",
		}
	}

	if sg.Score > 0 {
		popularity := math.Round(sg.Score * 100)
		mapped.Popularity = &popularity
	}

	return &mapped
}

// splitSgDatetime splits SeatGeek's local datetime ("2006-01-02T15:04:05")
// into the canonical date and time parts, falling back to the UTC stamp
// when no local one is present.
func splitSgDatetime(local, utc string) (string, *string) {
	dt := local
	if dt == "" {
		dt = utc
	}

	datePart, timePart, found := strings.Cut(dt, "T")
	if !found || len(timePart) < 5 {
		return datePart, nil
	}
	clock := timePart[:5] + ":00"
	return datePart, &clock
}

func sgEventType(sg sgEvent) event.EventType {
	// Taxonomy names are more specific than the type field, so they win
	for _, tax := range sg.Taxonomies {
		if mapped, ok := sgTaxonomies[tax.Name]; ok {
			return mapped
		}
	}
	if mapped, ok := sgTaxonomies[sg.Type]; ok {
		return mapped
	}
	return event.TypeOther
}

// sgBestImage prefers the first performer carrying an image
func sgBestImage(performers []sgPerformer) *string {
	for _, p := range performers {
		if p.Images != nil && p.Images.Huge != "" {
			return optional(p.Images.Huge)
		}
		if p.Image != "" {
			return optional(p.Image)
		}
	}
	return nil
}

func sgSortParam(key event.SortKey) string {
	switch key {
	case event.SortDate:
		return "datetime_local.asc"
	case event.SortRelevance:
		return "score.desc"
	case event.SortName:
		return "name.asc"
	default:
		return "datetime_local.asc"
	}
}
