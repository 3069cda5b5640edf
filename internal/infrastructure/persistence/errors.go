package persistence

import (
	"errors"
	"strings"

	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation detects a unique-constraint failure from any supported
// driver, with or without gorm's error translation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// translateError maps driver errors onto the domain taxonomy. Errors that
// are already domain errors pass through.
func translateError(err error, notFound, conflict, persistence string) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != "" {
		return shared.NewNotFoundError(notFound)
	}
	if isUniqueViolation(err) && conflict != "" {
		return shared.NewConflictError(conflict)
	}
	return shared.NewPersistenceError(persistence, err)
}

// escapeLike escapes LIKE wildcards so user input matches literally.
// Queries using it must declare ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
