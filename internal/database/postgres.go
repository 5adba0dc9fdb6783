package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the PostgreSQL connection pool and initializes tables.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = InitTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

// InitTables creates all necessary tables and indexes if they don't exist.
// The unique indexes are the authoritative guard against duplicate list names
// and duplicate list items; application-level pre-checks are UX only.
func InitTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			username VARCHAR(50) UNIQUE,
			hashed_password VARCHAR(255),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS lists (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS list_items (
			id UUID PRIMARY KEY,
			list_id UUID NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			movie_id VARCHAR(50) NOT NULL,
			notes TEXT,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS filter_presets (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			search_text TEXT,
			release_date_gte TIMESTAMPTZ,
			release_date_lte TIMESTAMPTZ,
			rating_gte DOUBLE PRECISION,
			rating_lte DOUBLE PRECISION,
			popularity_gte DOUBLE PRECISION,
			popularity_lte DOUBLE PRECISION,
			vote_count_gte INTEGER,
			vote_count_lte INTEGER,
			runtime_gte INTEGER,
			runtime_lte INTEGER,
			genres TEXT,
			original_language VARCHAR(10),
			spoken_languages TEXT,
			release_types TEXT,
			watch_providers TEXT,
			watch_region VARCHAR(2),
			watch_monetization_types TEXT,
			companies TEXT,
			origin_countries TEXT,
			cast_members TEXT,
			crew_members TEXT,
			include_keywords TEXT,
			exclude_keywords TEXT,
			sort_by VARCHAR(50),
			is_homepage_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			homepage_display_order INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Uniqueness guards
		`CREATE UNIQUE INDEX IF NOT EXISTS uix_lists_user_name ON lists (user_id, LOWER(name))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uix_list_items_list_movie ON list_items (list_id, movie_id)`,

		// Lookup indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_lists_user_id ON lists(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_list_items_list_id ON list_items(list_id)`,
		`CREATE INDEX IF NOT EXISTS idx_filter_presets_user_id ON filter_presets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_filter_presets_homepage ON filter_presets(user_id, is_homepage_enabled)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
