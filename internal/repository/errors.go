package repository

import (
	"context"
	"errors"
	"strings"

	"lavadero/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// messages holds the client-facing texts used when a driver error is
// recognized as a constraint violation.
type messages struct {
	duplicate     string
	missing       string
	missingEntity string // what a foreign-key violation points at
}

// translate maps driver and GORM failures onto the apperr taxonomy.
// Errors that already carry a kind are returned untouched.
func translate(op, entity string, err error, msgs messages) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		msg := msgs.missing
		if msg == "" {
			msg = entity + " no encontrado"
		}
		return apperr.NotFound(op, entity, msg, err)
	case isUniqueViolation(err):
		msg := msgs.duplicate
		if msg == "" {
			msg = "registro duplicado"
		}
		return apperr.Duplicate(op, entity, msg, err)
	case isForeignKeyViolation(err):
		target := msgs.missingEntity
		if target == "" {
			target = entity
		}
		msg := msgs.missing
		if msg == "" {
			msg = target + " no encontrado"
		}
		return apperr.NotFound(op, target, msg, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperr.Storage(op, entity, true, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "40001", "40P01", "55P03", "57014":
			// serialization / deadlock / lock_not_available / query_canceled
			return apperr.Storage(op, entity, true, err)
		}
	}
	msg := strings.ToLower(err.Error())
	transient := strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe")
	return apperr.Storage(op, entity, transient, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Fallback for wrapped errors that lost their type (both adapters).
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23503") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "foreign key constraint failed")
}
