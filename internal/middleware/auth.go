package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cinefiles/cinefiles-backend/internal/models"
	"github.com/cinefiles/cinefiles-backend/internal/services"
	"github.com/cinefiles/cinefiles-backend/pkg/utils"
)

type contextKey string

const userContextKey contextKey = "current_user"

// ExtractBearerToken pulls the token out of an "Authorization: Bearer <t>"
// header, returning "" when the header is missing or malformed.
func ExtractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth resolves the bearer token to a user and stores it in the
// request context. Every failure mode (missing header, bad signature,
// expired, wrong token type, unknown subject) gets the same generic 401 so
// nothing about accounts or token structure leaks.
func RequireAuth(users *services.UserService, tokens *utils.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := tokens.VerifyToken(token, utils.AccessToken)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetByEmail(r.Context(), claims.Subject)
			if err != nil || !user.IsActive {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user stashed by RequireAuth.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"Could not validate credentials"}`))
}
