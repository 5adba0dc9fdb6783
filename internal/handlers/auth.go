package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cinefiles/cinefiles-backend/internal/middleware"
	"github.com/cinefiles/cinefiles-backend/internal/services"
	"github.com/cinefiles/cinefiles-backend/pkg/utils"
)

type AuthHandler struct {
	Users  *services.UserService
	Tokens *utils.TokenManager
}

type SignupRequest struct {
	Email    string  `json:"email"`
	Username *string `json:"username,omitempty"`
	Password string  `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         interface{} `json:"user,omitempty"`
}

// Signup registers a new account. The password never leaves the server; the
// created user is returned without its hash.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		req.Username = nil
	}

	user, err := h.Users.Create(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login authenticates credentials and returns an access+refresh token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	pair, err := h.issuePair(user.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	pair.User = user

	writeJSON(w, http.StatusOK, pair)
}

// Refresh exchanges a valid refresh token for a new token pair. Invalid,
// expired, or wrong-type tokens all get the same generic 401.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	claims, err := h.Tokens.VerifyToken(req.RefreshToken, utils.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	// Subject must still resolve to a live account.
	user, err := h.Users.GetByEmail(r.Context(), claims.Subject)
	if err != nil || !user.IsActive {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	pair, err := h.issuePair(user.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) issuePair(email string) (*TokenResponse, error) {
	access, err := h.Tokens.IssueAccessToken(email)
	if err != nil {
		return nil, err
	}
	refresh, err := h.Tokens.IssueRefreshToken(email)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
