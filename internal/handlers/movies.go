package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cinefiles/cinefiles-backend/internal/services"
)

// MovieHandler proxies the movie catalog. Upstream JSON is passed through
// untouched so the frontend sees the provider's shapes directly.
type MovieHandler struct {
	Catalog *services.CatalogService
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *MovieHandler) writeRaw(w http.ResponseWriter, body json.RawMessage, err error) {
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *MovieHandler) Popular(w http.ResponseWriter, r *http.Request) {
	body, err := h.Catalog.PopularMovies(r.Context(), pageParam(r))
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	body, err := h.Catalog.TopRatedMovies(r.Context(), pageParam(r))
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	body, err := h.Catalog.UpcomingMovies(r.Context(), pageParam(r))
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) NowPlaying(w http.ResponseWriter, r *http.Request) {
	body, err := h.Catalog.NowPlayingMovies(r.Context(), pageParam(r))
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}
	body, err := h.Catalog.SearchMovies(r.Context(), query, pageParam(r))
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) movieEndpoint(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, movieID string) (json.RawMessage, error)) {
	movieID := chi.URLParam(r, "movieID")
	if movieID == "" {
		writeError(w, http.StatusBadRequest, "Movie id is required")
		return
	}
	body, err := fn(r.Context(), movieID)
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	h.movieEndpoint(w, r, h.Catalog.MovieDetails)
}

func (h *MovieHandler) Credits(w http.ResponseWriter, r *http.Request) {
	h.movieEndpoint(w, r, h.Catalog.MovieCredits)
}

func (h *MovieHandler) Videos(w http.ResponseWriter, r *http.Request) {
	h.movieEndpoint(w, r, h.Catalog.MovieVideos)
}

func (h *MovieHandler) WatchProviders(w http.ResponseWriter, r *http.Request) {
	h.movieEndpoint(w, r, h.Catalog.MovieWatchProviders)
}

func (h *MovieHandler) Genres(w http.ResponseWriter, r *http.Request) {
	body, err := h.Catalog.Genres(r.Context())
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) PersonDetails(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "personID")
	body, err := h.Catalog.PersonDetails(r.Context(), personID)
	h.writeRaw(w, body, err)
}

func (h *MovieHandler) PersonCredits(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "personID")
	body, err := h.Catalog.PersonCredits(r.Context(), personID)
	h.writeRaw(w, body, err)
}

// Discover forwards the caller's query string to the catalog's discover
// endpoint unchanged.
func (h *MovieHandler) Discover(w http.ResponseWriter, r *http.Request) {
	body, err := h.Catalog.DiscoverMovies(r.Context(), r.URL.Query())
	h.writeRaw(w, body, err)
}
