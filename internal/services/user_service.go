package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cinefiles/cinefiles-backend/internal/models"
	"github.com/cinefiles/cinefiles-backend/pkg/utils"
)

// UserService manages user accounts. Authentication failures are reported as
// ErrInvalidCredentials without distinguishing unknown-user from bad-password.
type UserService struct {
	DB *sql.DB
}

const userColumns = `id, email, username, hashed_password, is_active, created_at, updated_at, last_login`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create registers a new user with a hashed password.
// A taken email or username surfaces as ErrEmailTaken.
func (s *UserService) Create(ctx context.Context, email string, username *string, password string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       username,
		HashedPassword: &hashed,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, username, hashed_password, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, user.Username, user.HashedPassword, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// GetByEmail looks up a user by email. Used by the auth middleware to resolve
// the token subject.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Authenticate verifies credentials and stamps last_login on success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		// Deactivated accounts can't log in; same generic failure as a bad
		// password so deactivation isn't observable from outside.
		return nil, ErrInvalidCredentials
	}

	if user.HashedPassword == nil {
		// Externally-authenticated account with no local password.
		return nil, ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, *user.HashedPassword)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if _, err := s.DB.ExecContext(ctx,
		`UPDATE users SET last_login = $1 WHERE id = $2`, now, user.ID); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return user, nil
}
