package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConflict            = errors.New("conflict")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid login credentials")
	ErrEmailTaken          = errors.New("user already registered")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrStorageDisabled     = errors.New("storage not configured")
)

// AuthError is a failure reported by the identity provider. Message is shown
// to the user as is.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
