package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

// SQLSTATE коды, которые превращаются в доменные ошибки
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgStringTooLong       = "22001"
)

// mapError переводит ошибки драйвера в AppError. pgx используется в рантайме, lib/pq в интеграционных тестах.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrRecordNotFound.Wrap(err)
	}

	code, constraint := sqlState(err)
	switch code {
	case pgUniqueViolation:
		return apperrors.ErrAlreadyExists.
			WithDetails(map[string]interface{}{"constraint": constraint}).
			Wrap(err)
	case pgForeignKeyViolation:
		return apperrors.ErrRelatedRecordNotFound.
			WithDetails(map[string]interface{}{"constraint": constraint}).
			Wrap(err)
	case pgCheckViolation, pgNotNullViolation, pgStringTooLong:
		return apperrors.ErrConstraintViolation.
			WithDetails(map[string]interface{}{"constraint": constraint}).
			Wrap(err)
	}

	return apperrors.ErrDatabaseError.Wrap(err)
}

func sqlState(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}
