package database

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL error classes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	classConnectionException  pq.ErrorClass = "08"
	classDataException        pq.ErrorClass = "22"
	classIntegrityViolation   pq.ErrorClass = "23"
	classTransactionRollback  pq.ErrorClass = "40"
	classSyntaxOrAccess       pq.ErrorClass = "42"
	classInsufficientResource pq.ErrorClass = "53"
	classOperatorIntervention pq.ErrorClass = "57"

	codeUniqueViolation pq.ErrorCode = "23505"
)

// PQErrorCode returns the SQLSTATE of a wrapped *pq.Error, or "" for other errors
func PQErrorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation
func IsUniqueViolation(err error) bool {
	return PQErrorCode(err) == codeUniqueViolation
}

// IsRetryableError reports whether running the same statements again may
// succeed. Serialization failures, deadlocks and lost connections are
// retryable; constraint and data errors are not. Errors that do not come
// from the server are treated as transient.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	code := PQErrorCode(err)
	if code == "" {
		return true
	}
	switch code.Class() {
	case classTransactionRollback, classConnectionException, classInsufficientResource, classOperatorIntervention:
		return true
	case classIntegrityViolation, classDataException, classSyntaxOrAccess:
		return false
	}
	return false
}
