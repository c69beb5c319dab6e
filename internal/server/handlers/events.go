// internal/server/handlers/events.go

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"showscout/internal/adapter/cache"
	"showscout/internal/analytics"
	"showscout/internal/config"
	"showscout/internal/domain/event"
	"showscout/internal/service/aggregator"
)

// EventHandler handles event-search HTTP requests
type EventHandler struct {
	aggregator *aggregator.Aggregator
	cache      *cache.RedisCache
	publisher  *analytics.Publisher
	search     config.SearchConfig
}

// NewEventHandler creates a new event handler
func NewEventHandler(agg *aggregator.Aggregator, c *cache.RedisCache, pub *analytics.Publisher, search config.SearchConfig) *EventHandler {
	return &EventHandler{
		aggregator: agg,
		cache:      c,
		publisher:  pub,
		search:     search,
	}
}

var validSortKeys = map[event.SortKey]bool{
	event.SortDate:      true,
	event.SortRelevance: true,
	event.SortName:      true,
}

var validEventTypes = map[event.EventType]bool{
	event.TypeMusic:   true,
	event.TypeSports:  true,
	event.TypeTheatre: true,
	event.TypeMusical: true,
	event.TypeComedy:  true,
	event.TypeFamily:  true,
	event.TypeFilm:    true,
	event.TypeOther:   true,
}

// SearchEvents returns a deduplicated page of events near a location
func (h *EventHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	latStr := q.Get("lat")
	lngStr := q.Get("lng")
	if latStr == "" || lngStr == "" {
		respondWithError(w, http.StatusBadRequest, "lat and lng are required", nil)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		respondWithError(w, http.StatusBadRequest, "Invalid latitude", err)
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || lng < -180 || lng > 180 {
		respondWithError(w, http.StatusBadRequest, "Invalid longitude", err)
		return
	}

	radius := h.search.DefaultRadius
	if radiusStr := q.Get("radius"); radiusStr != "" {
		radius, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius < 1 || radius > h.search.MaxRadius {
			respondWithError(w, http.StatusBadRequest, "Invalid radius", err)
			return
		}
	}

	page := 0
	if pageStr := q.Get("page"); pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid page", err)
			return
		}
	}

	size := h.search.DefaultSize
	if sizeStr := q.Get("size"); sizeStr != "" {
		size, err = strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > h.search.MaxSize {
			respondWithError(w, http.StatusBadRequest, "Invalid size", err)
			return
		}
	}

	sort := event.SortDate
	if sortStr := q.Get("sort"); sortStr != "" {
		sort = event.SortKey(sortStr)
		if !validSortKeys[sort] {
			respondWithError(w, http.StatusBadRequest, "Invalid sort key", nil)
			return
		}
	}

	eventType := q.Get("eventType")
	if eventType != "" && !validEventTypes[event.EventType(eventType)] {
		respondWithError(w, http.StatusBadRequest, "Invalid event type", nil)
		return
	}

	startDateTime := q.Get("startDateTime")
	if startDateTime == "" {
		// Past events are rarely useful; default the window to now.
		startDateTime = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	}

	params := event.SearchParams{
		Lat:           lat,
		Lng:           lng,
		Radius:        radius,
		Keyword:       q.Get("keyword"),
		EventType:     event.EventType(eventType),
		StartDateTime: startDateTime,
		EndDateTime:   q.Get("endDateTime"),
		Page:          page,
		Size:          size,
		Sort:          sort,
	}

	key := cache.SearchKey(params)

	var result event.AggregatedResult
	if err := h.cache.GetSearch(r.Context(), key, &result); err != nil {
		result, err = h.aggregator.SearchAllSources(r.Context(), params)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to search events", err)
			return
		}

		if eventType == string(event.TypeMusical) {
			result.Events = filterMusicals(result.Events)
			result.Total = len(result.Events)
		}

		if err := h.cache.SetSearch(r.Context(), key, result); err != nil {
			log.Warn().Err(err).Msg("Failed to cache search result")
		}
	}

	h.publisher.PublishSearch(analytics.SearchEvent{
		Keyword:     params.Keyword,
		EventType:   eventType,
		Lat:         lat,
		Lng:         lng,
		Radius:      radius,
		ResultCount: result.Total,
		Duplicates:  result.Sources.DuplicatesRemoved,
	})

	totalPages := 0
	if result.Total > 0 {
		totalPages = (result.Total + size - 1) / size
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": result.Events,
		"pagination": map[string]int{
			"page":       page,
			"size":       size,
			"total":      result.Total,
			"totalPages": totalPages,
		},
		"sources": result.Sources,
	})
}

// GetEvent returns a single event by its composite id
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing event ID", nil)
		return
	}

	ev, err := h.aggregator.GetEventByID(r.Context(), id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}
	if ev == nil {
		respondWithError(w, http.StatusNotFound, "Event not found", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, ev)
}

// Ticketmaster has no musical classification, so musical queries ask
// sources for theatre and narrow the merged set here.
func filterMusicals(events []event.Event) []event.Event {
	filtered := []event.Event{}
	for _, ev := range events {
		if ev.EventType == event.TypeMusical {
			filtered = append(filtered, ev)
			continue
		}
		if ev.Genre != nil && strings.Contains(strings.ToLower(*ev.Genre), "musical") {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}
