package handlers

import (
	"log"
	"net/http"

	"github.com/cinefiles/cinefiles-backend/internal/services"
)

type NewsHandler struct {
	News *services.NewsService
}

// MovieNews returns recent movie news. The news rail is decorative, so a
// provider failure degrades to an empty list instead of erroring the page.
func (h *NewsHandler) MovieNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.News.MovieNews(r.Context())
	if err != nil {
		log.Printf("⚠️ news fetch failed: %v", err)
		writeJSON(w, http.StatusOK, []services.NewsItem{})
		return
	}
	writeJSON(w, http.StatusOK, items)
}
