// Package storeerr classifies database errors into the store failure kinds
// callers act on: key collisions, transient unavailability and the rest.
package storeerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"marketplace/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error codes and classes, see https://www.postgresql.org/docs/current/errcodes-appendix.html.
const (
	uniqueViolation      pq.ErrorCode = "23505"
	serializationFailure pq.ErrorCode = "40001"
	deadlockDetected     pq.ErrorCode = "40P01"
	adminShutdown        pq.ErrorCode = "57P01"
	tooManyConnections   pq.ErrorCode = "53300"
	queryCanceled        pq.ErrorCode = "57014"

	connectionExceptionClass pq.ErrorClass = "08"
)

// IsDuplicateKey reports whether err is a primary key or unique violation.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// IsTransient reports whether retrying the whole operation may succeed.
func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case serializationFailure, deadlockDetected, adminShutdown, tooManyConnections, queryCanceled:
			return true
		}
		return pqErr.Code.Class() == connectionExceptionClass
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// Classify wraps err for operation. Typed errors from errs pass through,
// transient failures become errs.StoreUnavailableError and key collisions
// errs.ConditionalCheckFailedError. Anything else is wrapped as is.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, errs.ErrConditionalCheckFailed),
		errors.Is(err, errs.ErrStoreUnavailable),
		errors.Is(err, errs.ErrObjectNotFound):
		return err
	case IsDuplicateKey(err):
		return errs.NewConditionalCheckFailedErrorWithCause(operation, err)
	case IsTransient(err):
		return errs.NewStoreUnavailableError(operation, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
