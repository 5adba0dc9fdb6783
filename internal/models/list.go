package models

import (
	"time"

	"github.com/google/uuid"
)

// Default list names. These are system-managed: created lazily by the watch
// toggles, never deletable or renamable, and reserved so a custom list can't
// shadow them.
const (
	WatchedListName   = "Watched"
	WatchlistListName = "Watchlist"
)

// List is a named, user-owned collection of movie references.
type List struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	IsDefault   bool       `json:"is_default"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Items       []ListItem `json:"items"`
}

// ListItem is the membership of a movie in a list. The (list, movie) pair is
// unique, so a movie appears at most once per list.
type ListItem struct {
	ID      uuid.UUID `json:"id"`
	ListID  uuid.UUID `json:"list_id"`
	MovieID string    `json:"movie_id"`
	Notes   *string   `json:"notes,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// WatchState is the full watched/watchlist state for one (user, movie) pair.
// Both toggles return it so the client can reconcile both indicators at once.
type WatchState struct {
	IsWatched   bool `json:"is_watched"`
	InWatchlist bool `json:"in_watchlist"`
}
