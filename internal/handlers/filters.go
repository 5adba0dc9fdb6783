package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cinefiles/cinefiles-backend/internal/middleware"
	"github.com/cinefiles/cinefiles-backend/internal/models"
	"github.com/cinefiles/cinefiles-backend/internal/services"
)

type FilterHandler struct {
	Filters *services.FilterService
}

type ReorderRequest struct {
	PresetIDs []uuid.UUID `json:"preset_ids"`
}

// ownedPreset resolves the presetID path param to a preset owned by the
// requesting user. Unknown ids and other users' presets both 404.
func (h *FilterHandler) ownedPreset(r *http.Request) (*models.User, *models.FilterPreset, error) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		return nil, nil, services.ErrNotFound
	}

	presetID, err := uuid.Parse(chi.URLParam(r, "presetID"))
	if err != nil {
		return nil, nil, services.ErrNotFound
	}

	preset, err := h.Filters.GetByID(r.Context(), presetID)
	if err != nil {
		return nil, nil, err
	}
	if preset.UserID != user.ID {
		return nil, nil, services.ErrNotFound
	}
	return user, preset, nil
}

// Create saves a new filter preset.
func (h *FilterHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var input models.FilterPresetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		writeError(w, http.StatusBadRequest, "Preset name is required")
		return
	}

	preset, err := h.Filters.Create(r.Context(), user.ID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, preset)
}

// List returns all of the current user's presets.
func (h *FilterHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	presets, err := h.Filters.ListForUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, presets)
}

// Get returns a single owned preset.
func (h *FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, preset, err := h.ownedPreset(r)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

// Update partially updates an owned preset.
func (h *FilterHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, preset, err := h.ownedPreset(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var input models.FilterPresetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		writeError(w, http.StatusBadRequest, "Preset name cannot be empty")
		return
	}

	updated, err := h.Filters.Update(r.Context(), preset.ID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an owned preset.
func (h *FilterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, preset, err := h.ownedPreset(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Filters.Delete(r.Context(), preset.ID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Homepage returns the homepage-enabled presets in display order.
func (h *FilterHandler) Homepage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	presets, err := h.Filters.ListHomepage(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, presets)
}

// ReorderHomepage rewrites the homepage display order to match the given id
// sequence and returns the reordered set.
func (h *FilterHandler) ReorderHomepage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.PresetIDs) == 0 {
		writeError(w, http.StatusBadRequest, "preset_ids is required")
		return
	}

	presets, err := h.Filters.ReorderHomepage(r.Context(), user.ID, req.PresetIDs)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, presets)
}
