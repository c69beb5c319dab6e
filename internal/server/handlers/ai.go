// internal/server/handlers/ai.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"showscout/internal/analytics"
	"showscout/internal/config"
	"showscout/internal/service/ai"
)

// AIHandler handles natural-language search requests
type AIHandler struct {
	searcher  *ai.Searcher
	publisher *analytics.Publisher
	search    config.SearchConfig
}

// NewAIHandler creates a new AI handler
func NewAIHandler(searcher *ai.Searcher, pub *analytics.Publisher, search config.SearchConfig) *AIHandler {
	return &AIHandler{
		searcher:  searcher,
		publisher: pub,
		search:    search,
	}
}

type aiSearchRequest struct {
	Query  string  `json:"query"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

// Search answers a natural-language event query
func (h *AIHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req aiSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Query == "" {
		respondWithError(w, http.StatusBadRequest, "query is required", nil)
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		respondWithError(w, http.StatusBadRequest, "Invalid coordinates", nil)
		return
	}

	radius := req.Radius
	if radius <= 0 {
		radius = h.search.DefaultRadius
	}
	if radius > h.search.MaxRadius {
		radius = h.search.MaxRadius
	}

	result, err := h.searcher.Search(r.Context(), req.Query, req.Lat, req.Lng, radius)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			respondWithError(w, http.StatusServiceUnavailable, "AI search is not configured", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "AI search failed", err)
		return
	}

	h.publisher.PublishSearch(analytics.SearchEvent{
		Keyword:     result.ExtractedParams.Keyword,
		EventType:   result.ExtractedParams.EventType,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Radius:      radius,
		ResultCount: result.TotalResults,
		AIAssisted:  true,
	})

	respondWithJSON(w, http.StatusOK, result)
}
