package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinefiles/cinefiles-backend/internal/models"
)

func TestFilterPresetCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")

	preset, err := filters.Create(ctx, userID, models.FilterPresetInput{
		Name:      strptr("90s action"),
		Genres:    strptr("28"),
		RatingGte: floatptr(7.0),
		SortBy:    strptr("popularity.desc"),
	})
	require.NoError(t, err)
	assert.Equal(t, "90s action", preset.Name)
	assert.False(t, preset.IsHomepageEnabled)
	assert.Nil(t, preset.HomepageDisplayOrder)
	require.NotNil(t, preset.RatingGte)
	assert.Equal(t, 7.0, *preset.RatingGte)
	assert.Nil(t, preset.SearchText)

	got, err := filters.GetByID(ctx, preset.ID)
	require.NoError(t, err)
	assert.Equal(t, preset.ID, got.ID)
}

func TestFilterPresetPartialUpdate(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")

	preset, err := filters.Create(ctx, userID, models.FilterPresetInput{
		Name:   strptr("90s action"),
		Genres: strptr("28"),
	})
	require.NoError(t, err)

	updated, err := filters.Update(ctx, preset.ID, models.FilterPresetInput{
		Name:      strptr("80s action"),
		RatingGte: floatptr(6.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "80s action", updated.Name)
	require.NotNil(t, updated.RatingGte)
	assert.Equal(t, 6.5, *updated.RatingGte)
	// Untouched fields survive.
	require.NotNil(t, updated.Genres)
	assert.Equal(t, "28", *updated.Genres)

	// Empty update is a no-op fetch.
	same, err := filters.Update(ctx, preset.ID, models.FilterPresetInput{})
	require.NoError(t, err)
	assert.Equal(t, updated.Name, same.Name)
}

func TestFilterPresetUpdateUnknown(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}

	_, err := filters.Update(context.Background(), uuid.New(), models.FilterPresetInput{
		Name: strptr("ghost"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilterPresetDelete(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")

	preset, err := filters.Create(ctx, userID, models.FilterPresetInput{Name: strptr("temp")})
	require.NoError(t, err)

	require.NoError(t, filters.Delete(ctx, preset.ID))
	assert.ErrorIs(t, filters.Delete(ctx, preset.ID), ErrNotFound)

	_, err = filters.GetByID(ctx, preset.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHomepageOrderingNullsLast(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")

	ordered, err := filters.Create(ctx, userID, models.FilterPresetInput{
		Name:                 strptr("second"),
		IsHomepageEnabled:    boolptr(true),
		HomepageDisplayOrder: intptr(1),
	})
	require.NoError(t, err)

	first, err := filters.Create(ctx, userID, models.FilterPresetInput{
		Name:                 strptr("first"),
		IsHomepageEnabled:    boolptr(true),
		HomepageDisplayOrder: intptr(0),
	})
	require.NoError(t, err)

	// Enabled but never ordered: sorts after every ordered preset.
	unordered, err := filters.Create(ctx, userID, models.FilterPresetInput{
		Name:              strptr("unordered"),
		IsHomepageEnabled: boolptr(true),
	})
	require.NoError(t, err)

	// Disabled presets never show up.
	_, err = filters.Create(ctx, userID, models.FilterPresetInput{Name: strptr("hidden")})
	require.NoError(t, err)

	homepage, err := filters.ListHomepage(ctx, userID)
	require.NoError(t, err)
	require.Len(t, homepage, 3)
	assert.Equal(t, first.ID, homepage[0].ID)
	assert.Equal(t, ordered.ID, homepage[1].ID)
	assert.Equal(t, unordered.ID, homepage[2].ID)
}

func TestDisablingHomepageClearsOrder(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")

	preset, err := filters.Create(ctx, userID, models.FilterPresetInput{
		Name:                 strptr("rail"),
		IsHomepageEnabled:    boolptr(true),
		HomepageDisplayOrder: intptr(3),
	})
	require.NoError(t, err)

	updated, err := filters.Update(ctx, preset.ID, models.FilterPresetInput{
		IsHomepageEnabled: boolptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsHomepageEnabled)
	assert.Nil(t, updated.HomepageDisplayOrder)
}

func TestReorderHomepage(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")

	var ids []uuid.UUID
	for _, name := range []string{"a", "b", "c"} {
		preset, err := filters.Create(ctx, userID, models.FilterPresetInput{
			Name:              strptr(name),
			IsHomepageEnabled: boolptr(true),
		})
		require.NoError(t, err)
		ids = append(ids, preset.ID)
	}

	reordered, err := filters.ReorderHomepage(ctx, userID, []uuid.UUID{ids[2], ids[0], ids[1]})
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	assert.Equal(t, ids[2], reordered[0].ID)
	assert.Equal(t, ids[0], reordered[1].ID)
	assert.Equal(t, ids[1], reordered[2].ID)
	for i, preset := range reordered {
		require.NotNil(t, preset.HomepageDisplayOrder)
		assert.Equal(t, i, *preset.HomepageDisplayOrder)
	}
}

func TestReorderHomepageEnablesPresets(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")

	preset, err := filters.Create(ctx, userID, models.FilterPresetInput{Name: strptr("off")})
	require.NoError(t, err)
	assert.False(t, preset.IsHomepageEnabled)

	reordered, err := filters.ReorderHomepage(ctx, userID, []uuid.UUID{preset.ID})
	require.NoError(t, err)
	require.Len(t, reordered, 1)
	assert.True(t, reordered[0].IsHomepageEnabled)
}

func TestReorderHomepageAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")
	otherID := createTestUser(t, db, "bob@example.com")

	mine, err := filters.Create(ctx, userID, models.FilterPresetInput{
		Name:                 strptr("mine"),
		IsHomepageEnabled:    boolptr(true),
		HomepageDisplayOrder: intptr(5),
	})
	require.NoError(t, err)
	theirs, err := filters.Create(ctx, otherID, models.FilterPresetInput{
		Name:              strptr("theirs"),
		IsHomepageEnabled: boolptr(true),
	})
	require.NoError(t, err)

	// Unknown id
	_, err = filters.ReorderHomepage(ctx, userID, []uuid.UUID{mine.ID, uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidReference)

	// Someone else's preset
	_, err = filters.ReorderHomepage(ctx, userID, []uuid.UUID{mine.ID, theirs.ID})
	assert.ErrorIs(t, err, ErrInvalidReference)

	// Duplicate id
	_, err = filters.ReorderHomepage(ctx, userID, []uuid.UUID{mine.ID, mine.ID})
	assert.ErrorIs(t, err, ErrInvalidReference)

	// The failed calls left the original order untouched.
	got, err := filters.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	require.NotNil(t, got.HomepageDisplayOrder)
	assert.Equal(t, 5, *got.HomepageDisplayOrder)
}

func TestListForUserScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	filters := &FilterService{DB: db}
	ctx := context.Background()
	userID := createTestUser(t, db, "alice@example.com")
	otherID := createTestUser(t, db, "bob@example.com")

	_, err := filters.Create(ctx, userID, models.FilterPresetInput{Name: strptr("mine")})
	require.NoError(t, err)
	_, err = filters.Create(ctx, otherID, models.FilterPresetInput{Name: strptr("theirs")})
	require.NoError(t, err)

	mine, err := filters.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Name)
}
