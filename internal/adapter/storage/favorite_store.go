// internal/adapter/storage/favorite_store.go

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"showscout/internal/domain/event"
	"showscout/internal/domain/favorite"
)

// FavoriteStore implements storage for favorites
type FavoriteStore struct {
	db *pgxpool.Pool
}

// NewFavoriteStore creates a new favorite store
func NewFavoriteStore(db *pgxpool.Pool) *FavoriteStore {
	return &FavoriteStore{
		db: db,
	}
}

// Save adds an event to a user's favorites
func (s *FavoriteStore) Save(ctx context.Context, fav favorite.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, event_id, event, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, event_id) DO UPDATE
		SET event = $4
	`

	if fav.ID == "" {
		fav.ID = uuid.NewString()
	}

	eventJSON, err := json.Marshal(fav.Event)
	if err != nil {
		return fmt.Errorf("error marshaling event snapshot: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		fav.ID,
		fav.UserID,
		fav.EventID,
		eventJSON,
		fav.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's favorites, most recently saved first
func (s *FavoriteStore) ListByUser(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	query := `
		SELECT id, user_id, event_id, event, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	favorites := []favorite.Favorite{}
	for rows.Next() {
		var fav favorite.Favorite
		var eventJSON []byte

		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.EventID, &eventJSON, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		var ev event.Event
		if err := json.Unmarshal(eventJSON, &ev); err != nil {
			return nil, fmt.Errorf("error unmarshaling event snapshot: %w", err)
		}
		fav.Event = ev

		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return favorites, nil
}

// Delete removes a favorite
func (s *FavoriteStore) Delete(ctx context.Context, userID, eventID string) (bool, error) {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND event_id = $2
	`

	tag, err := s.db.Exec(ctx, query, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
