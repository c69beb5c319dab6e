// internal/domain/favorite/model.go

// Package favorite defines saved events pinned by a user.
package favorite

import (
	"context"
	"time"

	"showscout/internal/domain/event"
)

// Favorite is an event a user saved. The event payload is a snapshot
// taken at save time, so a favorite survives the upstream listing
// disappearing.
type Favorite struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	EventID   string      `json:"eventId"`
	Event     event.Event `json:"event"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Store persists favorites
type Store interface {
	// Save adds an event to a user's favorites. Saving the same event
	// twice refreshes the snapshot instead of creating a duplicate.
	Save(ctx context.Context, fav Favorite) error

	// ListByUser returns a user's favorites, most recently saved first.
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)

	// Delete removes a favorite. Returns false if nothing was deleted.
	Delete(ctx context.Context, userID, eventID string) (bool, error)
}
