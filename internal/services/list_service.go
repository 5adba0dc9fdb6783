package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cinefiles/cinefiles-backend/internal/models"
)

// ListService manages movie lists and the watched/watchlist state machine.
// It does not enforce ownership on single-list reads; handlers must compare
// list.UserID against the authenticated user before exposing or mutating.
type ListService struct {
	DB *sql.DB
}

// isReservedName reports whether name collides (case-insensitively) with a
// default list name. Custom lists can't take these, otherwise a later toggle
// would adopt the user's custom list as the system-managed one.
func isReservedName(name string) bool {
	return strings.EqualFold(name, models.WatchedListName) ||
		strings.EqualFold(name, models.WatchlistListName)
}

// Create inserts a custom (non-default) list. The unique index on
// (user_id, LOWER(name)) is the authoritative duplicate guard.
func (s *ListService) Create(ctx context.Context, userID uuid.UUID, name string, description *string) (*models.List, error) {
	name = strings.TrimSpace(name)
	if isReservedName(name) {
		return nil, ErrReservedName
	}

	now := time.Now().UTC()
	list := &models.List{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		IsDefault:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       []models.ListItem{},
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO lists (id, user_id, name, description, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, list.ID, list.UserID, list.Name, list.Description, list.IsDefault, list.CreatedAt, list.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return list, nil
}

// NameAvailable checks case-insensitively whether the user already has a list
// with this name, optionally excluding one list (rename-in-place). This is a
// UX pre-check only; concurrent creates are settled by the unique index.
func (s *ListService) NameAvailable(ctx context.Context, userID uuid.UUID, name string, excludeListID *uuid.UUID) (bool, error) {
	var exists bool
	var err error
	if excludeListID != nil {
		err = s.DB.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM lists WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3)
		`, userID, strings.TrimSpace(name), *excludeListID).Scan(&exists)
	} else {
		err = s.DB.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM lists WHERE user_id = $1 AND LOWER(name) = LOWER($2))
		`, userID, strings.TrimSpace(name)).Scan(&exists)
	}
	if err != nil {
		return false, err
	}
	return !exists, nil
}

const listColumns = `id, user_id, name, description, is_default, created_at, updated_at`

func scanList(scanner interface{ Scan(...interface{}) error }) (*models.List, error) {
	var l models.List
	err := scanner.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.IsDefault, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l.Items = []models.ListItem{}
	return &l, nil
}

// GetUserLists returns every list (default and custom) owned by the user,
// with items embedded so callers never need a second fetch.
func (s *ListService) GetUserLists(ctx context.Context, userID uuid.UUID) ([]models.List, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.List{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		index[l.ID] = len(lists)
		lists = append(lists, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return lists, nil
	}

	itemRows, err := s.DB.QueryContext(ctx, `
		SELECT id, list_id, movie_id, notes, added_at FROM list_items
		WHERE list_id IN (SELECT id FROM lists WHERE user_id = $1)
		ORDER BY added_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.ListItem
		if err := itemRows.Scan(&item.ID, &item.ListID, &item.MovieID, &item.Notes, &item.AddedAt); err != nil {
			return nil, err
		}
		if i, ok := index[item.ListID]; ok {
			lists[i].Items = append(lists[i].Items, item)
		}
	}
	return lists, itemRows.Err()
}

// GetByID fetches a list with its items, regardless of owner.
func (s *ListService) GetByID(ctx context.Context, listID uuid.UUID) (*models.List, error) {
	list, err := scanList(s.DB.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE id = $1`, listID))
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, list_id, movie_id, notes, added_at FROM list_items WHERE list_id = $1 ORDER BY added_at`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ListItem
		if err := rows.Scan(&item.ID, &item.ListID, &item.MovieID, &item.Notes, &item.AddedAt); err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	return list, rows.Err()
}

// Update applies a partial update (name and/or description). Default lists
// are immutable.
func (s *ListService) Update(ctx context.Context, listID uuid.UUID, name *string, description *string) (*models.List, error) {
	current, err := scanList(s.DB.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE id = $1`, listID))
	if err != nil {
		return nil, err
	}
	if current.IsDefault {
		return nil, ErrDefaultList
	}

	newName := current.Name
	if name != nil {
		newName = strings.TrimSpace(*name)
		if isReservedName(newName) {
			return nil, ErrReservedName
		}
	}
	newDescription := current.Description
	if description != nil {
		newDescription = description
	}

	_, err = s.DB.ExecContext(ctx, `
		UPDATE lists SET name = $1, description = $2, updated_at = $3 WHERE id = $4
	`, newName, newDescription, time.Now().UTC(), listID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return s.GetByID(ctx, listID)
}

// Delete removes a custom list; items go with it via the FK cascade.
// Default lists are refused.
func (s *ListService) Delete(ctx context.Context, listID uuid.UUID) error {
	list, err := scanList(s.DB.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE id = $1`, listID))
	if err != nil {
		return err
	}
	if list.IsDefault {
		return ErrDefaultList
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, listID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddItem inserts a movie into a list. A duplicate (list, movie) pair
// surfaces as ErrDuplicateItem.
func (s *ListService) AddItem(ctx context.Context, listID uuid.UUID, movieID string, notes *string) (*models.ListItem, error) {
	item := &models.ListItem{
		ID:      uuid.New(),
		ListID:  listID,
		MovieID: movieID,
		Notes:   notes,
		AddedAt: time.Now().UTC(),
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO list_items (id, list_id, movie_id, notes, added_at)
		VALUES ($1, $2, $3, $4, $5)
	`, item.ID, item.ListID, item.MovieID, item.Notes, item.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateItem
		}
		return nil, err
	}

	return item, nil
}

// RemoveItem deletes a movie from a list. Returns true when a row was
// deleted, false when the pair did not exist.
func (s *ListService) RemoveItem(ctx context.Context, listID uuid.UUID, movieID string) (bool, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM list_items WHERE list_id = $1 AND movie_id = $2`, listID, movieID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ToggleWatched flips the watched state of a movie for the user and returns
// the full resulting state. Marking a movie watched removes it from the
// watchlist in the same transaction.
func (s *ListService) ToggleWatched(ctx context.Context, userID uuid.UUID, movieID string) (*models.WatchState, error) {
	return s.toggle(ctx, userID, movieID, true)
}

// ToggleWatchlist flips the watchlist state of a movie for the user and
// returns the full resulting state. Toggling the watchlist on an already
// watched movie is a no-op: watched takes precedence.
func (s *ListService) ToggleWatchlist(ctx context.Context, userID uuid.UUID, movieID string) (*models.WatchState, error) {
	return s.toggle(ctx, userID, movieID, false)
}

func (s *ListService) toggle(ctx context.Context, userID uuid.UUID, movieID string, watched bool) (*models.WatchState, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	watchedList, err := getOrCreateDefaultList(ctx, tx, userID, models.WatchedListName, "Movies you have watched")
	if err != nil {
		return nil, err
	}
	watchlist, err := getOrCreateDefaultList(ctx, tx, userID, models.WatchlistListName, "Movies you want to watch")
	if err != nil {
		return nil, err
	}

	inWatched, err := itemExists(ctx, tx, watchedList, movieID)
	if err != nil {
		return nil, err
	}
	inWatchlist, err := itemExists(ctx, tx, watchlist, movieID)
	if err != nil {
		return nil, err
	}

	state := &models.WatchState{}
	switch {
	case watched && inWatched:
		if err := deleteItem(ctx, tx, watchedList, movieID); err != nil {
			return nil, err
		}
		state.InWatchlist = inWatchlist
	case watched:
		// Moving out of the watchlist and into watched is one transaction:
		// a crash can't leave the movie in both lists.
		if inWatchlist {
			if err := deleteItem(ctx, tx, watchlist, movieID); err != nil {
				return nil, err
			}
		}
		if err := insertItem(ctx, tx, watchedList, movieID); err != nil {
			return nil, err
		}
		state.IsWatched = true
	case inWatched:
		// Watched takes precedence: a watchlist toggle can't pull a watched
		// movie back into the watchlist.
		state.IsWatched = true
	case inWatchlist:
		if err := deleteItem(ctx, tx, watchlist, movieID); err != nil {
			return nil, err
		}
	default:
		if err := insertItem(ctx, tx, watchlist, movieID); err != nil {
			return nil, err
		}
		state.InWatchlist = true
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return state, nil
}

// getOrCreateDefaultList lazily creates a default list on first use. The
// insert races through ON CONFLICT DO NOTHING against the per-user name
// index, so concurrent first toggles converge on a single row.
func getOrCreateDefaultList(ctx context.Context, tx *sql.Tx, userID uuid.UUID, name, description string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM lists WHERE user_id = $1 AND name = $2`, userID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO lists (id, user_id, name, description, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6)
		ON CONFLICT DO NOTHING
	`, uuid.New(), userID, name, description, now, now); err != nil {
		return uuid.Nil, err
	}

	err = tx.QueryRowContext(ctx,
		`SELECT id FROM lists WHERE user_id = $1 AND name = $2`, userID, name).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func itemExists(ctx context.Context, tx *sql.Tx, listID uuid.UUID, movieID string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM list_items WHERE list_id = $1 AND movie_id = $2)`,
		listID, movieID).Scan(&exists)
	return exists, err
}

func insertItem(ctx context.Context, tx *sql.Tx, listID uuid.UUID, movieID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO list_items (id, list_id, movie_id, added_at) VALUES ($1, $2, $3, $4)
	`, uuid.New(), listID, movieID, time.Now().UTC())
	return err
}

func deleteItem(ctx context.Context, tx *sql.Tx, listID uuid.UUID, movieID string) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM list_items WHERE list_id = $1 AND movie_id = $2`, listID, movieID)
	return err
}
