package repository

import (
	"errors"

	"dispatch/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// https://www.postgresql.org/docs/current/errcodes-appendix.html#23505:~:text=foreign_key_violation-,23505,-unique_violation
	PgErrUniqueViolation = "23505"
	// https://www.postgresql.org/docs/current/errcodes-appendix.html#:~:text=40001
	PgErrSerializationFailure = "40001"
)

// Ошибки хранилища, общие для нескольких сервисов.
var (
	ErrDeliveryNotFound   = apperr.New(apperr.ErrNotFound, "delivery not found")
	ErrAssignmentNotFound = apperr.New(apperr.ErrNotFound, "assignment not found")
	ErrRiderNotFound      = apperr.New(apperr.ErrNotFound, "rider not found")
	ErrLocationNotFound   = apperr.New(apperr.ErrNotFound, "no location reported yet")
	ErrETANotFound        = apperr.New(apperr.ErrNotFound, "eta not calculated yet")

	ErrConcurrentUpdate = apperr.New(apperr.ErrConflict, "record was changed concurrently, retry")
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// IsConflict ошибки, после которых имеет смысл повторить транзакцию.
func IsConflict(err error) bool {
	return IsPgErrorWithCode(err, PgErrSerializationFailure) || IsPgErrorWithCode(err, PgErrUniqueViolation)
}
