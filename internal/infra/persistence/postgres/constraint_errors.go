package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net"
	"strings"

	domainerrors "playground/internal/domain/errors"
	"playground/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgQueryCanceled       = "57014"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return "", ""
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if code, _ := pgCode(err); code == pgUniqueViolation {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if code, _ := pgCode(err); code == pgForeignKeyViolation {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isNotNullConstraintViolation(err error) bool {
	if code, _ := pgCode(err); code == pgNotNullViolation {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null constraint")
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	if code, _ := pgCode(err); code == pgCheckViolation {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if code, _ := pgCode(err); code == pgQueryCanceled {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "failed to connect")
}

// duplicateTarget names the unique constraint a violation hit, falling back to the driver message.
func duplicateTarget(err error) string {
	if _, constraint := pgCode(err); constraint != "" {
		return strings.ToLower(constraint)
	}

	return strings.ToLower(err.Error())
}

// classifyError maps a driver error onto the error taxonomy. op names the failed operation.
func classifyError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrDuplicate.WithDetails(op)
	case isNotNullConstraintViolation(err), isCheckConstraintViolation(err), isForeignKeyConstraintViolation(err):
		return domainerrors.ErrBadRequest.WithDetails(op)
	case isTimeout(err):
		return domainerrors.ErrRequestTimeout.WithDetails(op)
	case isConnectionFailure(err):
		return domainerrors.ErrServerUnavailable.WithDetails(op)
	default:
		return domainerrors.NewDatabaseExecuteError(err, op)
	}
}
