package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	PostgresURI     string
	RedisURI        string
	AccessSecret    string // JWT secret for access tokens
	RefreshSecret   string // JWT secret for refresh tokens (independent of AccessSecret)
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	TMDBBaseURL     string
	TMDBBearerToken string
	RedditBaseURL   string
	Port            string
	FrontendURL     string
	AllowedOrigins  []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	Environment     string   // ENV: production, development, etc.
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		PostgresURI:     getEnv("POSTGRES_URI", "postgres://localhost:5432/cinefiles?sslmode=disable"),
		RedisURI:        getEnv("REDIS_URI", "redis://localhost:6379/0"),
		AccessSecret:    getEnv("JWT_SECRET_KEY", "your-secret-key-for-development"),
		RefreshSecret:   getEnv("JWT_REFRESH_SECRET_KEY", "your-refresh-secret-for-development"),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		TMDBBaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBBearerToken: getEnv("TMDB_BEARER_TOKEN", ""),
		RedditBaseURL:   getEnv("REDDIT_BASE_URL", "https://www.reddit.com"),
		Port:            getEnv("PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins:  allowedOrigins,
		Environment:     env,
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsingDefaultSecrets reports whether either JWT secret is still the
// development fallback. main logs a warning when this is true.
func (c *Config) UsingDefaultSecrets() bool {
	return strings.Contains(c.AccessSecret, "for-development") ||
		strings.Contains(c.RefreshSecret, "for-development")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
