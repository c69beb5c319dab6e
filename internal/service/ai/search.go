// Package ai implements the natural-language search front-end: it turns
// a free-text query into structured search parameters via a tool call,
// runs the aggregator, and writes a short summary of what came back.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"

	"showscout/internal/domain/event"
	"showscout/internal/service/aggregator"
)

const model = "claude-sonnet-4-20250514"

const (
	// aiPageSize is the fixed page size for AI-driven searches
	aiPageSize = 20

	// minResults is the threshold below which the search is broadened
	minResults = 5

	// maxMergedResults caps the merged list after the web-search pass
	maxMergedResults = 25
)

// ErrNotConfigured is returned when no Anthropic API key is set
var ErrNotConfigured = errors.New("ANTHROPIC_API_KEY is not configured")

// ExtractedParams are the structured search parameters the model pulls
// out of the user's query.
type ExtractedParams struct {
	Keyword   string  `json:"keyword,omitempty"`
	EventType string  `json:"eventType,omitempty"`
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
}

// SourceCounts breaks an AI search result down by origin
type SourceCounts struct {
	Ticketmaster int `json:"ticketmaster"`
	Seatgeek     int `json:"seatgeek"`
	WebSearch    int `json:"webSearch"`
}

// Result is the complete outcome of one AI search
type Result struct {
	Events          []event.Event   `json:"events"`
	Summary         string          `json:"aiSummary"`
	ExtractedParams ExtractedParams `json:"extractedParams"`
	TotalResults    int             `json:"totalResults"`
	Sources         SourceCounts    `json:"sources"`
}

// Searcher runs natural-language event searches against the aggregator
type Searcher struct {
	client     anthropic.Client
	aggregator *aggregator.Aggregator
	configured bool
}

// NewSearcher creates an AI searcher. An empty API key produces a
// searcher whose Search always returns ErrNotConfigured; the HTTP layer
// maps that to 503 rather than failing startup.
func NewSearcher(apiKey string, agg *aggregator.Aggregator) *Searcher {
	s := &Searcher{aggregator: agg}
	if apiKey != "" {
		s.client = anthropic.NewClient(option.WithAPIKey(apiKey))
		s.configured = true
	}
	return s
}

var searchTool = anthropic.ToolParam{
	Name: "search_events",
	Description: anthropic.String(
		"Search for live events (concerts, sports, theatre, comedy, family, film) near a location. " +
			"Extract structured search parameters from the user's natural language query."),
	InputSchema: anthropic.ToolInputSchemaParam{
		Properties: map[string]interface{}{
			"keyword": map[string]interface{}{
				"type":        "string",
				"description": `Artist name, event name, or search keyword (e.g. "Taylor Swift", "jazz", "basketball")`,
			},
			"eventType": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"music", "sports", "theatre", "musical", "comedy", "family", "film"},
				"description": "Category of event to search for",
			},
			"startDate": map[string]interface{}{
				"type":        "string",
				"description": `Start date in YYYY-MM-DD format. Use today's date if the user says "tonight" or "today".`,
			},
			"endDate": map[string]interface{}{
				"type":        "string",
				"description": `End date in YYYY-MM-DD format. For "this weekend" use the upcoming Sunday.`,
			},
			"radius": map[string]interface{}{
				"type":        "number",
				"description": "Search radius in miles (default 25). Only set if the user specifies a distance.",
			},
		},
	},
}

func extractionSystemPrompt(now time.Time) string {
	return fmt.Sprintf(
		"You are a helpful event search assistant. Today is %s, %s. "+
			"When the user asks about events, use the search_events tool to find them. "+
			"Extract the most relevant search parameters from their query. "+
			`If they mention "this weekend", calculate the dates for the upcoming Saturday and Sunday. `+
			`If they mention "tonight" or "today", use today's date for both start and end. `+
			`If they mention "next week", calculate the date range for the upcoming Monday through Sunday. `+
			"Always use the search_events tool — do not try to answer event questions from memory.",
		now.Weekday(), now.Format("2006-01-02"))
}

// Search answers a natural-language event query. It extracts structured
// parameters, runs the aggregator (broadening the search when results
// are thin), augments with web-search finds, and summarizes.
//
// Each aggregator invocation here is an independent, atomic call; the
// broaden-and-retry loop belongs to this front-end, not the aggregator.
func (s *Searcher) Search(ctx context.Context, query string, lat, lng, radius float64) (*Result, error) {
	if !s.configured {
		return nil, ErrNotConfigured
	}

	log.Info().
		Str("query", query).
		Float64("lat", lat).Float64("lng", lng).Float64("radius", radius).
		Msg("AI search request")

	params, err := s.extractParams(ctx, query)
	if err != nil {
		return nil, err
	}
	if params == nil {
		return &Result{
			Events:  []event.Event{},
			Summary: "I wasn't able to parse your search query. Try being more specific.",
		}, nil
	}
	log.Info().Interface("extractedParams", params).Msg("Extracted search params")

	searchRadius := params.Radius
	if searchRadius == 0 {
		searchRadius = radius
	}

	base := event.SearchParams{
		Lat:       lat,
		Lng:       lng,
		Radius:    searchRadius,
		Keyword:   params.Keyword,
		EventType: event.EventType(params.EventType),
		Page:      0,
		Size:      aiPageSize,
		Sort:      event.SortRelevance,
	}
	if params.StartDate != "" {
		base.StartDateTime = params.StartDate + "T00:00:00Z"
	}
	if params.EndDate != "" {
		base.EndDateTime = params.EndDate + "T23:59:59Z"
	}

	result, err := s.aggregator.SearchAllSources(ctx, base)
	if err != nil {
		return nil, err
	}

	result = s.broaden(ctx, result, base)

	webEvents := s.webSearch(ctx, query, lat, lng, searchRadius, result.Events)
	if len(webEvents) > 0 {
		result = mergeWebEvents(result, webEvents)
	}

	summary := s.summarize(ctx, query, lat, lng, searchRadius, result, len(webEvents))

	return &Result{
		Events:          result.Events,
		Summary:         summary,
		ExtractedParams: *params,
		TotalResults:    result.Total,
		Sources: SourceCounts{
			Ticketmaster: result.Sources.Ticketmaster,
			Seatgeek:     result.Sources.Seatgeek,
			WebSearch:    len(webEvents),
		},
	}, nil
}

// extractParams asks the model to turn the query into search parameters.
// A nil result with nil error means the model skipped the tool.
func (s *Searcher) extractParams(ctx context.Context, query string) (*ExtractedParams, error) {
	response, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: extractionSystemPrompt(time.Now())}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
		Tools:      []anthropic.ToolUnionParam{{OfTool: &searchTool}},
		ToolChoice: anthropic.ToolChoiceUnionParam{OfTool: &anthropic.ToolChoiceToolParam{Name: "search_events"}},
	})
	if err != nil {
		return nil, fmt.Errorf("parameter extraction failed: %w", err)
	}

	for _, block := range response.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok {
			continue
		}
		var params ExtractedParams
		if err := decodeToolInput(toolUse.Input, &params); err != nil {
			return nil, fmt.Errorf("failed to decode extracted params: %w", err)
		}
		return &params, nil
	}

	log.Warn().Msg("Model did not use the search tool")
	return nil, nil
}

// broaden retries thin result sets with progressively looser parameters:
// first without date bounds, then without the keyword, merging novel
// events into the original page.
func (s *Searcher) broaden(ctx context.Context, result event.AggregatedResult, base event.SearchParams) event.AggregatedResult {
	if len(result.Events) >= minResults {
		return result
	}

	if base.StartDateTime != "" || base.EndDateTime != "" {
		log.Info().Msg("Few results, retrying without date restriction")
		noDates := base
		noDates.StartDateTime = ""
		noDates.EndDateTime = ""
		noDates.Sort = event.SortDate

		if broader, err := s.aggregator.SearchAllSources(ctx, noDates); err == nil &&
			len(broader.Events) > len(result.Events) {
			result = mergeResults(result, broader, aiPageSize)
		}
	}

	if len(result.Events) < minResults && base.Keyword != "" {
		log.Info().Msg("Still few results, retrying without keyword")
		noKeyword := base
		noKeyword.Keyword = ""
		noKeyword.Sort = event.SortDate

		if broader, err := s.aggregator.SearchAllSources(ctx, noKeyword); err == nil &&
			len(broader.Events) > 0 {
			result = mergeResults(result, broader, aiPageSize)
		}
	}

	return result
}

// mergeResults folds a broader result set into the original, keeping
// only events not already present.
func mergeResults(orig, broader event.AggregatedResult, limit int) event.AggregatedResult {
	existing := make(map[string]bool, len(orig.Events))
	for _, e := range orig.Events {
		existing[e.ID] = true
	}

	merged := orig.Events
	added := 0
	for _, e := range broader.Events {
		if !existing[e.ID] {
			merged = append(merged, e)
			added++
		}
	}
	if len(merged) > limit {
		merged = merged[:limit]
	}

	return event.AggregatedResult{
		Events: merged,
		Total:  orig.Total + added,
		Sources: event.SourceBreakdown{
			Ticketmaster:      orig.Sources.Ticketmaster + broader.Sources.Ticketmaster,
			Seatgeek:          orig.Sources.Seatgeek + broader.Sources.Seatgeek,
			DuplicatesRemoved: orig.Sources.DuplicatesRemoved + broader.Sources.DuplicatesRemoved,
		},
	}
}

// mergeWebEvents appends web-search finds that aren't already covered by
// a structured-API result, comparing ids and name containment.
func mergeWebEvents(result event.AggregatedResult, webEvents []event.Event) event.AggregatedResult {
	existingIDs := make(map[string]bool, len(result.Events))
	var existingNames []string
	for _, e := range result.Events {
		existingIDs[e.ID] = true
		existingNames = append(existingNames, lower(e.Name))
	}

	for _, w := range webEvents {
		if existingIDs[w.ID] || nameCovered(lower(w.Name), existingNames) {
			continue
		}
		result.Events = append(result.Events, w)
		result.Total++
	}
	if len(result.Events) > maxMergedResults {
		result.Events = result.Events[:maxMergedResults]
	}
	return result
}

// summarize asks the model for a short friendly description of the
// results, falling back to a plain count when no text comes back.
func (s *Searcher) summarize(ctx context.Context, query string, lat, lng, radius float64, result event.AggregatedResult, webCount int) string {
	fallback := fmt.Sprintf("Found %d events matching your search.", result.Total)

	type eventSummary struct {
		Name  string            `json:"name"`
		Venue string            `json:"venue"`
		City  string            `json:"city"`
		Date  string            `json:"date"`
		Time  *string           `json:"time"`
		Type  event.EventType   `json:"type"`
		Genre *string           `json:"genre"`
		Price *event.PriceRange `json:"price"`
		Src   event.Source      `json:"source"`
	}

	top := result.Events
	if len(top) > 12 {
		top = top[:12]
	}
	summaries := make([]eventSummary, 0, len(top))
	for _, e := range top {
		summaries = append(summaries, eventSummary{
			Name: e.Name, Venue: e.Venue.Name, City: e.Venue.City,
			Date: e.StartDate, Time: e.StartTime, Type: e.EventType,
			Genre: e.Genre, Price: e.PriceRange, Src: e.Source,
		})
	}
	summariesJSON, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fallback
	}

	breakdown := fmt.Sprintf(
		"Sources: %d from Ticketmaster, %d from SeatGeek, %d from web search. %d duplicates removed.",
		result.Sources.Ticketmaster, result.Sources.Seatgeek, webCount, result.Sources.DuplicatesRemoved)

	response, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{{
			Text: "You are a concise event assistant. Summarize the search results in 2-3 friendly sentences. " +
				"Mention the total count, highlight a few interesting options, and note the date range if relevant. " +
				"If results come from multiple sources, briefly mention that for credibility.",
		}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(
				"The user searched for %q near lat %v, lng %v within %v miles. We found %d events. %s\n\nTop results:\n%s",
				query, lat, lng, radius, result.Total, breakdown, summariesJSON))),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("Summary generation failed")
		return fallback
	}

	for _, block := range response.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return fallback
}

// decodeToolInput round-trips a tool_use input into a typed struct; the
// SDK may hand the input back as raw JSON or a decoded map.
func decodeToolInput(input interface{}, out interface{}) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
