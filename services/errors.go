package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a referenced user, post or comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a username or email uniqueness constraint is violated.
	ErrDuplicate = errors.New("already exists")
	// ErrValidation is returned for malformed or missing input, before storage is touched.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, tampered and expired tokens alike so the
	// response surface does not reveal which check failed.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
