package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity anchor every owned resource hangs off.
// HashedPassword is omitted from JSON and nullable in storage so externally
// authenticated accounts can exist without one.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       *string    `json:"username,omitempty"`
	HashedPassword *string    `json:"-"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}
