package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var testDBSeq int64

// openTestDB opens a fresh in-memory SQLite database mirroring the Postgres
// schema. The service SQL stays portable (ordinal placeholders, no RETURNING,
// values generated in Go) precisely so these tests don't need a server.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`PRAGMA foreign_keys = ON`,

		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT UNIQUE,
			hashed_password TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			last_login TIMESTAMP
		)`,

		`CREATE TABLE lists (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE list_items (
			id TEXT PRIMARY KEY,
			list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			movie_id TEXT NOT NULL,
			notes TEXT,
			added_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE filter_presets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			search_text TEXT,
			release_date_gte TIMESTAMP,
			release_date_lte TIMESTAMP,
			rating_gte REAL,
			rating_lte REAL,
			popularity_gte REAL,
			popularity_lte REAL,
			vote_count_gte INTEGER,
			vote_count_lte INTEGER,
			runtime_gte INTEGER,
			runtime_lte INTEGER,
			genres TEXT,
			original_language TEXT,
			spoken_languages TEXT,
			release_types TEXT,
			watch_providers TEXT,
			watch_region TEXT,
			watch_monetization_types TEXT,
			companies TEXT,
			origin_countries TEXT,
			cast_members TEXT,
			crew_members TEXT,
			include_keywords TEXT,
			exclude_keywords TEXT,
			sort_by TEXT,
			is_homepage_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			homepage_display_order INTEGER,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE UNIQUE INDEX uix_lists_user_name ON lists (user_id, LOWER(name))`,
		`CREATE UNIQUE INDEX uix_list_items_list_movie ON list_items (list_id, movie_id)`,
	}
	for _, q := range schema {
		_, err := db.Exec(q)
		require.NoError(t, err)
	}

	return db
}

// createTestUser inserts a user row and returns its id.
func createTestUser(t *testing.T, db *sql.DB, email string) uuid.UUID {
	t.Helper()

	users := &UserService{DB: db}
	user, err := users.Create(context.Background(), email, nil, "test-password-123")
	require.NoError(t, err)
	return user.ID
}

func strptr(s string) *string { return &s }

func intptr(n int) *int { return &n }

func boolptr(b bool) *bool { return &b }

func floatptr(f float64) *float64 { return &f }
