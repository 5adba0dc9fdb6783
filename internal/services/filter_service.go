package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cinefiles/cinefiles-backend/internal/models"
)

// FilterService manages saved movie-filter presets, including homepage
// display ordering. Ownership checks are the caller's job, same as lists.
type FilterService struct {
	DB *sql.DB
}

const presetColumns = `id, user_id, name, search_text, release_date_gte, release_date_lte,
	rating_gte, rating_lte, popularity_gte, popularity_lte,
	vote_count_gte, vote_count_lte, runtime_gte, runtime_lte,
	genres, original_language, spoken_languages, release_types,
	watch_providers, watch_region, watch_monetization_types,
	companies, origin_countries, cast_members, crew_members,
	include_keywords, exclude_keywords, sort_by,
	is_homepage_enabled, homepage_display_order, created_at, updated_at`

func scanPreset(scanner interface{ Scan(...interface{}) error }) (*models.FilterPreset, error) {
	var p models.FilterPreset
	err := scanner.Scan(
		&p.ID, &p.UserID, &p.Name, &p.SearchText, &p.ReleaseDateGte, &p.ReleaseDateLte,
		&p.RatingGte, &p.RatingLte, &p.PopularityGte, &p.PopularityLte,
		&p.VoteCountGte, &p.VoteCountLte, &p.RuntimeGte, &p.RuntimeLte,
		&p.Genres, &p.OriginalLanguage, &p.SpokenLanguages, &p.ReleaseTypes,
		&p.WatchProviders, &p.WatchRegion, &p.WatchMonetizationTypes,
		&p.Companies, &p.OriginCountries, &p.CastMembers, &p.CrewMembers,
		&p.IncludeKeywords, &p.ExcludeKeywords, &p.SortBy,
		&p.IsHomepageEnabled, &p.HomepageDisplayOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new filter preset for the user. Name is required;
// everything else stays null unless provided.
func (s *FilterService) Create(ctx context.Context, userID uuid.UUID, input models.FilterPresetInput) (*models.FilterPreset, error) {
	now := time.Now().UTC()
	id := uuid.New()

	enabled := false
	if input.IsHomepageEnabled != nil {
		enabled = *input.IsHomepageEnabled
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO filter_presets (
			id, user_id, name, search_text, release_date_gte, release_date_lte,
			rating_gte, rating_lte, popularity_gte, popularity_lte,
			vote_count_gte, vote_count_lte, runtime_gte, runtime_lte,
			genres, original_language, spoken_languages, release_types,
			watch_providers, watch_region, watch_monetization_types,
			companies, origin_countries, cast_members, crew_members,
			include_keywords, exclude_keywords, sort_by,
			is_homepage_enabled, homepage_display_order, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)
	`, id, userID, strings.TrimSpace(*input.Name), input.SearchText, input.ReleaseDateGte, input.ReleaseDateLte,
		input.RatingGte, input.RatingLte, input.PopularityGte, input.PopularityLte,
		input.VoteCountGte, input.VoteCountLte, input.RuntimeGte, input.RuntimeLte,
		input.Genres, input.OriginalLanguage, input.SpokenLanguages, input.ReleaseTypes,
		input.WatchProviders, input.WatchRegion, input.WatchMonetizationTypes,
		input.Companies, input.OriginCountries, input.CastMembers, input.CrewMembers,
		input.IncludeKeywords, input.ExcludeKeywords, input.SortBy,
		enabled, input.HomepageDisplayOrder, now, now)
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a preset regardless of owner.
func (s *FilterService) GetByID(ctx context.Context, id uuid.UUID) (*models.FilterPreset, error) {
	return scanPreset(s.DB.QueryRowContext(ctx,
		`SELECT `+presetColumns+` FROM filter_presets WHERE id = $1`, id))
}

// ListForUser returns every preset owned by the user, oldest first.
func (s *FilterService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.FilterPreset, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+presetColumns+` FROM filter_presets WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPresets(rows)
}

// ListHomepage returns the homepage-enabled presets ordered by display order
// ascending with nulls last, created_at breaking ties.
func (s *FilterService) ListHomepage(ctx context.Context, userID uuid.UUID) ([]models.FilterPreset, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+presetColumns+` FROM filter_presets
		WHERE user_id = $1 AND is_homepage_enabled
		ORDER BY (homepage_display_order IS NULL), homepage_display_order, created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPresets(rows)
}

func collectPresets(rows *sql.Rows) ([]models.FilterPreset, error) {
	presets := []models.FilterPreset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}
	return presets, rows.Err()
}

// Update applies a partial update: only the fields present in input change.
func (s *FilterService) Update(ctx context.Context, id uuid.UUID, input models.FilterPresetInput) (*models.FilterPreset, error) {
	set := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		add("name", strings.TrimSpace(*input.Name))
	}
	if input.SearchText != nil {
		add("search_text", *input.SearchText)
	}
	if input.ReleaseDateGte != nil {
		add("release_date_gte", *input.ReleaseDateGte)
	}
	if input.ReleaseDateLte != nil {
		add("release_date_lte", *input.ReleaseDateLte)
	}
	if input.RatingGte != nil {
		add("rating_gte", *input.RatingGte)
	}
	if input.RatingLte != nil {
		add("rating_lte", *input.RatingLte)
	}
	if input.PopularityGte != nil {
		add("popularity_gte", *input.PopularityGte)
	}
	if input.PopularityLte != nil {
		add("popularity_lte", *input.PopularityLte)
	}
	if input.VoteCountGte != nil {
		add("vote_count_gte", *input.VoteCountGte)
	}
	if input.VoteCountLte != nil {
		add("vote_count_lte", *input.VoteCountLte)
	}
	if input.RuntimeGte != nil {
		add("runtime_gte", *input.RuntimeGte)
	}
	if input.RuntimeLte != nil {
		add("runtime_lte", *input.RuntimeLte)
	}
	if input.Genres != nil {
		add("genres", *input.Genres)
	}
	if input.OriginalLanguage != nil {
		add("original_language", *input.OriginalLanguage)
	}
	if input.SpokenLanguages != nil {
		add("spoken_languages", *input.SpokenLanguages)
	}
	if input.ReleaseTypes != nil {
		add("release_types", *input.ReleaseTypes)
	}
	if input.WatchProviders != nil {
		add("watch_providers", *input.WatchProviders)
	}
	if input.WatchRegion != nil {
		add("watch_region", *input.WatchRegion)
	}
	if input.WatchMonetizationTypes != nil {
		add("watch_monetization_types", *input.WatchMonetizationTypes)
	}
	if input.Companies != nil {
		add("companies", *input.Companies)
	}
	if input.OriginCountries != nil {
		add("origin_countries", *input.OriginCountries)
	}
	if input.CastMembers != nil {
		add("cast_members", *input.CastMembers)
	}
	if input.CrewMembers != nil {
		add("crew_members", *input.CrewMembers)
	}
	if input.IncludeKeywords != nil {
		add("include_keywords", *input.IncludeKeywords)
	}
	if input.ExcludeKeywords != nil {
		add("exclude_keywords", *input.ExcludeKeywords)
	}
	if input.SortBy != nil {
		add("sort_by", *input.SortBy)
	}
	if input.IsHomepageEnabled != nil {
		add("is_homepage_enabled", *input.IsHomepageEnabled)
		if !*input.IsHomepageEnabled && input.HomepageDisplayOrder == nil {
			// Disabling homepage display clears the order slot.
			add("homepage_display_order", nil)
		}
	}
	if input.HomepageDisplayOrder != nil {
		add("homepage_display_order", *input.HomepageDisplayOrder)
	}

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE filter_presets SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes a preset.
func (s *FilterService) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM filter_presets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderHomepage rewrites homepage_display_order for the given presets in
// sequence, all-or-nothing: any id that is unknown, duplicated, or owned by
// someone else fails the whole call and leaves every order untouched.
// Reordered presets are switched to homepage display, matching the client,
// which only ever reorders the enabled set.
func (s *FilterService) ReorderHomepage(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.FilterPreset, error) {
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if seen[id] {
			return nil, ErrInvalidReference
		}
		seen[id] = true
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i, id := range ids {
		res, err := tx.ExecContext(ctx, `
			UPDATE filter_presets
			SET homepage_display_order = $1, is_homepage_enabled = TRUE, updated_at = $2
			WHERE id = $3 AND user_id = $4
		`, i, now, id, userID)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInvalidReference
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.ListHomepage(ctx, userID)
}
