package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cinefiles/cinefiles-backend/internal/services"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// respondError maps service-layer errors to HTTP statuses. Ownership and
// existence failures collapse into one 404; upstream failures get a generic
// 502 so provider details never reach clients.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrReservedName),
		errors.Is(err, services.ErrDefaultList),
		errors.Is(err, services.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateItem):
		writeError(w, http.StatusConflict, err.Error())
	default:
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			log.Printf("upstream failure: %v", err)
			writeError(w, http.StatusBadGateway, "Upstream service unavailable")
			return
		}
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
