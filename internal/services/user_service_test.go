package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndAuthenticate(t *testing.T) {
	db := openTestDB(t)
	users := &UserService{DB: db}
	ctx := context.Background()

	created, err := users.Create(ctx, "alice@example.com", strptr("alice"), "hunter2hunter2")
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.LastLogin)

	got, err := users.Authenticate(ctx, "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.NotNil(t, got.LastLogin)
}

func TestUserAuthenticateFailures(t *testing.T) {
	db := openTestDB(t)
	users := &UserService{DB: db}
	ctx := context.Background()

	_, err := users.Create(ctx, "alice@example.com", nil, "hunter2hunter2")
	require.NoError(t, err)

	// Unknown user and wrong password are indistinguishable.
	_, err = users.Authenticate(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserAuthenticateInactiveAccount(t *testing.T) {
	db := openTestDB(t)
	users := &UserService{DB: db}
	ctx := context.Background()

	created, err := users.Create(ctx, "alice@example.com", nil, "hunter2hunter2")
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE users SET is_active = FALSE WHERE id = $1`, created.ID)
	require.NoError(t, err)

	// Correct password, deactivated account: same generic failure.
	_, err = users.Authenticate(ctx, "alice@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	users := &UserService{DB: db}
	ctx := context.Background()

	_, err := users.Create(ctx, "alice@example.com", nil, "hunter2hunter2")
	require.NoError(t, err)

	_, err = users.Create(ctx, "alice@example.com", nil, "another-password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db := openTestDB(t)
	users := &UserService{DB: db}

	_, err := users.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
