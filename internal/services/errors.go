package services

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// statuses; ownership failures surface as ErrNotFound so other users'
// resources never leak their existence.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email or username already registered")
	ErrDuplicateName      = errors.New("a list with this name already exists")
	ErrReservedName       = errors.New("this list name is reserved")
	ErrDefaultList        = errors.New("default lists cannot be modified or deleted")
	ErrDuplicateItem      = errors.New("movie is already in this list")
	ErrInvalidReference   = errors.New("one or more referenced ids are unknown or not owned")
)

// isUniqueViolation reports whether err is a storage-level unique constraint
// failure. The unique indexes are the authoritative guard against
// check-then-act races; callers catch this and translate to the matching
// sentinel. Postgres reports code 23505; the message check covers other
// database/sql drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique_violation")
}
