package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail is returned by UserRepository.Create when the address is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrUnknownRole is returned when a stored user carries a role outside the enumeration.
var ErrUnknownRole = errors.New("unknown user role")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
