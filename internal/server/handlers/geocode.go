// internal/server/handlers/geocode.go

package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"showscout/internal/adapter/geocode"
)

// GeocodeHandler handles postal-code lookup requests
type GeocodeHandler struct {
	client *geocode.Client
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(client *geocode.Client) *GeocodeHandler {
	return &GeocodeHandler{
		client: client,
	}
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// GeocodeZip resolves a US ZIP code to coordinates
func (h *GeocodeHandler) GeocodeZip(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	if !zipPattern.MatchString(zip) {
		respondWithError(w, http.StatusBadRequest, "zip must be a 5-digit US postal code", nil)
		return
	}

	location, err := h.client.GeocodeZip(r.Context(), zip)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Postal code not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Geocoding failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}
