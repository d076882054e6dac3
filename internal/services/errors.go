package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Error kinds. Match with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrSchema              = errors.New("schema error")
	ErrIO                  = errors.New("io error")
)

type ServiceError struct {
	Status  int
	Message string
	Kind    error
	Cause   error
}

func (e ServiceError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e ServiceError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func NotFound(msg string) error {
	return ServiceError{Status: 404, Message: msg, Kind: ErrNotFound}
}

func Validation(msg string) error {
	return ServiceError{Status: 400, Message: msg, Kind: ErrValidation}
}

func Conflict(msg string, cause error) error {
	return ServiceError{Status: 409, Message: msg, Kind: ErrConstraintViolation, Cause: cause}
}

func SchemaFailure(msg string, cause error) error {
	return ServiceError{Status: 500, Message: msg, Kind: ErrSchema, Cause: cause}
}

func IOFailure(msg string, cause error) error {
	return ServiceError{Status: 500, Message: msg, Kind: ErrIO, Cause: cause}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// storageError classifies a driver error into the service taxonomy.
// Unrecognised errors are wrapped unchanged.
func storageError(err error, op string) error {
	if err == nil {
		return nil
	}
	var serr ServiceError
	if errors.As(err, &serr) {
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return Conflict(op, err)
		}
		if isMissingRelation(liteErr.Error()) {
			return SchemaFailure(op, err)
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return Conflict(op, err)
		case pgErr.Code == "42P01" || pgErr.Code == "42703":
			return SchemaFailure(op, err)
		}
	}

	if isMissingRelation(err.Error()) {
		return SchemaFailure(op, err)
	}
	return WrapError(err, op)
}

func isMissingRelation(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "no such view") ||
		strings.Contains(msg, "no such column")
}
