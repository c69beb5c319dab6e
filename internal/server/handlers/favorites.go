// internal/server/handlers/favorites.go

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"showscout/internal/domain/event"
	"showscout/internal/domain/favorite"
)

// FavoriteHandler handles saved-event HTTP requests
type FavoriteHandler struct {
	store favorite.Store
}

// NewFavoriteHandler creates a new favorite handler. A nil store means
// no database is configured; every route then answers 503.
func NewFavoriteHandler(store favorite.Store) *FavoriteHandler {
	return &FavoriteHandler{
		store: store,
	}
}

// User identity comes from the gateway in front of this service. Auth
// itself is out of scope here.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func (h *FavoriteHandler) unavailable(w http.ResponseWriter) bool {
	if h.store == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Favorites are not configured", nil)
		return true
	}
	return false
}

type saveFavoriteRequest struct {
	Event event.Event `json:"event"`
}

// SaveFavorite adds an event to the caller's favorites
func (h *FavoriteHandler) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w) {
		return
	}

	uid := userID(r)
	if uid == "" {
		respondWithError(w, http.StatusUnauthorized, "Missing user identity", nil)
		return
	}

	var req saveFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Event.ID == "" || req.Event.Name == "" {
		respondWithError(w, http.StatusBadRequest, "event with id and name is required", nil)
		return
	}

	fav := favorite.Favorite{
		UserID:    uid,
		EventID:   req.Event.ID,
		Event:     req.Event,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.Save(r.Context(), fav); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save favorite", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, fav)
}

// ListFavorites returns the caller's favorites, newest first
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w) {
		return
	}

	uid := userID(r)
	if uid == "" {
		respondWithError(w, http.StatusUnauthorized, "Missing user identity", nil)
		return
	}

	favorites, err := h.store.ListByUser(r.Context(), uid)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list favorites", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": favorites})
}

// DeleteFavorite removes an event from the caller's favorites
func (h *FavoriteHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w) {
		return
	}

	uid := userID(r)
	if uid == "" {
		respondWithError(w, http.StatusUnauthorized, "Missing user identity", nil)
		return
	}

	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing event ID", nil)
		return
	}

	deleted, err := h.store.Delete(r.Context(), uid, eventID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete favorite", err)
		return
	}
	if !deleted {
		respondWithError(w, http.StatusNotFound, "Favorite not found", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
