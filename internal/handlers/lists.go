package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cinefiles/cinefiles-backend/internal/middleware"
	"github.com/cinefiles/cinefiles-backend/internal/models"
	"github.com/cinefiles/cinefiles-backend/internal/services"
)

type ListHandler struct {
	Lists *services.ListService
}

type CreateListRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateListRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AddItemRequest struct {
	MovieID string  `json:"movie_id"`
	Notes   *string `json:"notes,omitempty"`
}

// ownedList resolves the listID path param to a list owned by the requesting
// user. Someone else's list and a nonexistent list are indistinguishable to
// the caller, both come back as ErrNotFound.
func (h *ListHandler) ownedList(r *http.Request) (*models.User, *models.List, error) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		return nil, nil, services.ErrNotFound
	}

	listID, err := uuid.Parse(chi.URLParam(r, "listID"))
	if err != nil {
		return nil, nil, services.ErrNotFound
	}

	list, err := h.Lists.GetByID(r.Context(), listID)
	if err != nil {
		return nil, nil, err
	}
	if list.UserID != user.ID {
		return nil, nil, services.ErrNotFound
	}
	return user, list, nil
}

// CreateList makes a new custom list for the current user.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req CreateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "List name is required")
		return
	}

	list, err := h.Lists.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, list)
}

// GetLists returns all of the current user's lists with items.
func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	lists, err := h.Lists.GetUserLists(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}

// GetList returns a single owned list with its items.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	_, list, err := h.ownedList(r)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateList renames a custom list or changes its description.
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	_, list, err := h.ownedList(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req UpdateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "List name cannot be empty")
		return
	}

	updated, err := h.Lists.Update(r.Context(), list.ID, req.Name, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteList removes a custom list and everything in it.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	_, list, err := h.ownedList(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Lists.Delete(r.Context(), list.ID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem puts a movie into an owned list.
func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	_, list, err := h.ownedList(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.MovieID = strings.TrimSpace(req.MovieID)
	if req.MovieID == "" {
		writeError(w, http.StatusBadRequest, "movie_id is required")
		return
	}

	item, err := h.Lists.AddItem(r.Context(), list.ID, req.MovieID, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// RemoveItem takes a movie out of an owned list.
func (h *ListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	_, list, err := h.ownedList(r)
	if err != nil {
		respondError(w, err)
		return
	}

	movieID := chi.URLParam(r, "movieID")
	removed, err := h.Lists.RemoveItem(r.Context(), list.ID, movieID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleWatched flips a movie's watched state and returns the resulting
// watched/watchlist pair.
func (h *ListHandler) ToggleWatched(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Lists.ToggleWatched)
}

// ToggleWatchlist flips a movie's watchlist state and returns the resulting
// watched/watchlist pair.
func (h *ListHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Lists.ToggleWatchlist)
}

func (h *ListHandler) toggle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userID uuid.UUID, movieID string) (*models.WatchState, error)) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	movieID := strings.TrimSpace(chi.URLParam(r, "movieID"))
	if movieID == "" {
		writeError(w, http.StatusBadRequest, "movie_id is required")
		return
	}

	state, err := fn(r.Context(), user.ID, movieID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}
