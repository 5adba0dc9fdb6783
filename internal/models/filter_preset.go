package models

import (
	"time"

	"github.com/google/uuid"
)

// FilterPreset is a saved set of discovery-query parameters. All filter
// fields are optional; list-valued filters (genres, providers, keywords...)
// are stored as comma-separated strings, matching the catalog query format.
type FilterPreset struct {
	ID                     uuid.UUID  `json:"id"`
	UserID                 uuid.UUID  `json:"user_id"`
	Name                   string     `json:"name"`
	SearchText             *string    `json:"search_text,omitempty"`
	ReleaseDateGte         *time.Time `json:"release_date_gte,omitempty"`
	ReleaseDateLte         *time.Time `json:"release_date_lte,omitempty"`
	RatingGte              *float64   `json:"rating_gte,omitempty"`
	RatingLte              *float64   `json:"rating_lte,omitempty"`
	PopularityGte          *float64   `json:"popularity_gte,omitempty"`
	PopularityLte          *float64   `json:"popularity_lte,omitempty"`
	VoteCountGte           *int       `json:"vote_count_gte,omitempty"`
	VoteCountLte           *int       `json:"vote_count_lte,omitempty"`
	RuntimeGte             *int       `json:"runtime_gte,omitempty"`
	RuntimeLte             *int       `json:"runtime_lte,omitempty"`
	Genres                 *string    `json:"genres,omitempty"`
	OriginalLanguage       *string    `json:"original_language,omitempty"`
	SpokenLanguages        *string    `json:"spoken_languages,omitempty"`
	ReleaseTypes           *string    `json:"release_types,omitempty"`
	WatchProviders         *string    `json:"watch_providers,omitempty"`
	WatchRegion            *string    `json:"watch_region,omitempty"`
	WatchMonetizationTypes *string    `json:"watch_monetization_types,omitempty"`
	Companies              *string    `json:"companies,omitempty"`
	OriginCountries        *string    `json:"origin_countries,omitempty"`
	CastMembers            *string    `json:"cast,omitempty"`
	CrewMembers            *string    `json:"crew,omitempty"`
	IncludeKeywords        *string    `json:"include_keywords,omitempty"`
	ExcludeKeywords        *string    `json:"exclude_keywords,omitempty"`
	SortBy                 *string    `json:"sort_by,omitempty"`
	IsHomepageEnabled      bool       `json:"is_homepage_enabled"`
	HomepageDisplayOrder   *int       `json:"homepage_display_order,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// FilterPresetInput carries the client-settable fields for create and partial
// update. Nil means "not provided" on update; on create, nil fields stay null.
type FilterPresetInput struct {
	Name                   *string    `json:"name,omitempty"`
	SearchText             *string    `json:"search_text,omitempty"`
	ReleaseDateGte         *time.Time `json:"release_date_gte,omitempty"`
	ReleaseDateLte         *time.Time `json:"release_date_lte,omitempty"`
	RatingGte              *float64   `json:"rating_gte,omitempty"`
	RatingLte              *float64   `json:"rating_lte,omitempty"`
	PopularityGte          *float64   `json:"popularity_gte,omitempty"`
	PopularityLte          *float64   `json:"popularity_lte,omitempty"`
	VoteCountGte           *int       `json:"vote_count_gte,omitempty"`
	VoteCountLte           *int       `json:"vote_count_lte,omitempty"`
	RuntimeGte             *int       `json:"runtime_gte,omitempty"`
	RuntimeLte             *int       `json:"runtime_lte,omitempty"`
	Genres                 *string    `json:"genres,omitempty"`
	OriginalLanguage       *string    `json:"original_language,omitempty"`
	SpokenLanguages        *string    `json:"spoken_languages,omitempty"`
	ReleaseTypes           *string    `json:"release_types,omitempty"`
	WatchProviders         *string    `json:"watch_providers,omitempty"`
	WatchRegion            *string    `json:"watch_region,omitempty"`
	WatchMonetizationTypes *string    `json:"watch_monetization_types,omitempty"`
	Companies              *string    `json:"companies,omitempty"`
	OriginCountries        *string    `json:"origin_countries,omitempty"`
	CastMembers            *string    `json:"cast,omitempty"`
	CrewMembers            *string    `json:"crew,omitempty"`
	IncludeKeywords        *string    `json:"include_keywords,omitempty"`
	ExcludeKeywords        *string    `json:"exclude_keywords,omitempty"`
	SortBy                 *string    `json:"sort_by,omitempty"`
	IsHomepageEnabled      *bool      `json:"is_homepage_enabled,omitempty"`
	HomepageDisplayOrder   *int       `json:"homepage_display_order,omitempty"`
}
