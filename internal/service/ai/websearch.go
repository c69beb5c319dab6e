package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"showscout/internal/domain/event"
)

// webExtractTool is the structured-extraction tool the model fills in
// from its web search results.
var webExtractTool = anthropic.ToolParam{
	Name:        "extract_events",
	Description: anthropic.String("Extract structured event information from web search results."),
	InputSchema: anthropic.ToolInputSchemaParam{
		Properties: map[string]interface{}{
			"events": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":  map[string]interface{}{"type": "string", "description": "Event name"},
						"venue": map[string]interface{}{"type": "string", "description": "Venue name"},
						"city":  map[string]interface{}{"type": "string", "description": "City"},
						"state": map[string]interface{}{"type": "string", "description": "State abbreviation"},
						"date":  map[string]interface{}{"type": "string", "description": "Date in YYYY-MM-DD format"},
						"time":  map[string]interface{}{"type": "string", "description": "Time in HH:MM:SS format or null"},
						"eventType": map[string]interface{}{
							"type": "string",
							"enum": []string{"music", "sports", "theatre", "musical", "comedy", "family", "film", "other"},
						},
						"url":         map[string]interface{}{"type": "string", "description": "URL to buy tickets or event page"},
						"description": map[string]interface{}{"type": "string", "description": "Brief description"},
						"priceMin":    map[string]interface{}{"type": "number", "description": "Minimum price or null"},
						"priceMax":    map[string]interface{}{"type": "number", "description": "Maximum price or null"},
					},
					"required": []string{"name", "venue", "city", "state", "date", "eventType", "url"},
				},
			},
		},
		Required: []string{"events"},
	},
}

type webExtractedEvents struct {
	Events []webExtractedEvent `json:"events"`
}

type webExtractedEvent struct {
	Name        string   `json:"name"`
	Venue       string   `json:"venue"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	EventType   string   `json:"eventType"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	PriceMin    *float64 `json:"priceMin"`
	PriceMax    *float64 `json:"priceMax"`
}

// webSearch looks for events beyond the structured APIs — venue sites,
// Eventbrite, local calendars — and maps the finds into canonical
// records. Failures are logged and swallowed; the structured results
// stand on their own.
func (s *Searcher) webSearch(ctx context.Context, query string, lat, lng, radius float64, existing []event.Event) []event.Event {
	events, err := s.searchWebForEvents(ctx, query, lat, lng, radius, existing)
	if err != nil {
		log.Warn().Err(err).Msg("Web search failed, continuing with API results")
		return nil
	}
	if len(events) > 0 {
		log.Info().Int("webResults", len(events)).Msg("Found additional events via web search")
	}
	return events
}

func (s *Searcher) searchWebForEvents(ctx context.Context, query string, lat, lng, radius float64, existing []event.Event) ([]event.Event, error) {
	today := time.Now().UTC().Format("2006-01-02")

	// Rough location label for the search, taken from the best
	// structured result we already have.
	locationLabel := "the area"
	if len(existing) > 0 {
		locationLabel = existing[0].Venue.City
		if existing[0].Venue.State != "" {
			locationLabel += ", " + existing[0].Venue.State
		}
	}

	var existingNames []string
	for i, e := range existing {
		if i >= 10 {
			break
		}
		existingNames = append(existingNames, e.Name)
	}
	knownEvents := strings.Join(existingNames, ", ")
	if knownEvents == "" {
		knownEvents = "none"
	}

	response, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{{
			Text: fmt.Sprintf(
				"You are an event research assistant. Today is %s. Search the web for live events matching the "+
					"user's query. Focus on finding events from venue websites, Eventbrite, local event calendars, "+
					"and other sources NOT typically found on Ticketmaster or SeatGeek. Extract structured event "+
					"data using the extract_events tool. Only include events with confirmed dates and venues. "+
					"Do not include events that are clearly the same as the ones already found.", today),
		}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(
				"Search for: %q near %s (within %v miles). Today is %s.\n\n"+
					"We already have these events from Ticketmaster/SeatGeek: %s\n\n"+
					"Please search the web to find additional events NOT in that list, particularly from venue "+
					"websites, Eventbrite, local event listings, etc. Extract any events you find using the "+
					"extract_events tool.",
				query, locationLabel, radius, today, knownEvents))),
		},
		Tools: []anthropic.ToolUnionParam{
			{OfTool: &webExtractTool},
			{OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{
				MaxUses: anthropic.Int(5),
			}},
		},
	})
	if err != nil {
		return nil, err
	}

	var extracted *webExtractedEvents
	for _, block := range response.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != "extract_events" {
			continue
		}
		var payload webExtractedEvents
		if err := decodeToolInput(toolUse.Input, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode extracted web events: %w", err)
		}
		extracted = &payload
		break
	}
	if extracted == nil {
		log.Debug().Msg("Web search did not return structured events")
		return nil, nil
	}

	events := make([]event.Event, 0, len(extracted.Events))
	for _, raw := range extracted.Events {
		if raw.Name == "" || raw.Venue == "" || raw.Date == "" || raw.URL == "" {
			continue
		}
		events = append(events, mapWebEvent(raw, lat, lng))
	}
	return events, nil
}

// mapWebEvent converts one extracted web event into a canonical record.
// Web events rarely carry exact coordinates, so the query point stands
// in for the venue location.
func mapWebEvent(raw webExtractedEvent, lat, lng float64) event.Event {
	sourceID := uuid.NewString()

	eventType := event.EventType(raw.EventType)
	switch eventType {
	case event.TypeMusic, event.TypeSports, event.TypeTheatre, event.TypeMusical,
		event.TypeComedy, event.TypeFamily, event.TypeFilm:
	default:
		eventType = event.TypeOther
	}

	mapped := event.Event{
		ID:         "web_" + sourceID,
		Source:     event.SourceWeb,
		SourceID:   sourceID,
		Name:       raw.Name,
		EventType:  eventType,
		StartDate:  raw.Date,
		DateStatus: event.DateConfirmed,
		Venue: event.Venue{
			Name:      raw.Venue,
			City:      raw.City,
			State:     raw.State,
			Latitude:  lat,
			Longitude: lng,
		},
		Images: []event.Image{},
		URL:    raw.URL,
	}

	if raw.Time != "" {
		mapped.StartTime = &raw.Time
	}
	if raw.Description != "" {
		mapped.Description = &raw.Description
	}
	if raw.PriceMin != nil {
		mapped.PriceRange = &event.PriceRange{
			Min:      raw.PriceMin,
			Max:      raw.PriceMax,
			Currency: "USD",
		}
	}

	return mapped
}

func lower(s string) string {
	return strings.ToLower(s)
}

// nameCovered reports whether a web event's name overlaps an existing
// result's name in either containment direction.
func nameCovered(name string, existingNames []string) bool {
	for _, existing := range existingNames {
		if strings.Contains(existing, name) || strings.Contains(name, existing) {
			return true
		}
	}
	return false
}
