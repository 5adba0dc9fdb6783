package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType discriminates access tokens from refresh tokens so one can never
// be used in place of the other.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// TokenClaims is the signed claims bundle carried by both token kinds.
// Subject holds the user's email.
type TokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies JWT token pairs. Access and refresh tokens
// are signed with independent secrets, so a token verifies only against the
// secret of its own kind.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived access token for the given email.
func (tm *TokenManager) IssueAccessToken(email string) (string, error) {
	return tm.issue(email, AccessToken, tm.accessSecret, tm.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the given email.
func (tm *TokenManager) IssueRefreshToken(email string) (string, error) {
	return tm.issue(email, RefreshToken, tm.refreshSecret, tm.refreshTTL)
}

func (tm *TokenManager) issue(email string, tokenType TokenType, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		TokenType: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a token of the expected type.
// It returns ErrExpiredToken when the token is past its expiry,
// ErrWrongTokenType when the discriminator doesn't match, and
// ErrInvalidToken for every other failure (bad signature included —
// a token signed with the other kind's secret never verifies).
func (tm *TokenManager) VerifyToken(tokenString string, expected TokenType) (*TokenClaims, error) {
	secret := tm.accessSecret
	if expected == RefreshToken {
		secret = tm.refreshSecret
	}

	claims := &TokenClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != string(expected) {
		return nil, ErrWrongTokenType
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
