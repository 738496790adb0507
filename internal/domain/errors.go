package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a row does not exist
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// MalformedPayloadError rejects a webhook body permanently. Retrying the same
// body cannot succeed, so callers answer 4xx and never touch storage.
type MalformedPayloadError struct {
	Field  string
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed payload: %s", e.Reason)
	}
	return fmt.Sprintf("malformed payload: %s %s", e.Field, e.Reason)
}

// StorageTransactionError wraps any failure inside the ingest transaction.
// The whole transaction has been rolled back and the webhook can be retried.
type StorageTransactionError struct {
	Op  string
	Err error
	// Retryable is false for errors that a retry will hit again, such as a
	// constraint violation on the same payload.
	Retryable bool
}

func (e *StorageTransactionError) Error() string {
	return fmt.Sprintf("storage transaction failed during %s: %v", e.Op, e.Err)
}

func (e *StorageTransactionError) Unwrap() error {
	return e.Err
}

// IsMalformedPayload reports whether err is or wraps a MalformedPayloadError
func IsMalformedPayload(err error) bool {
	var target *MalformedPayloadError
	return errors.As(err, &target)
}

// IsStorageTransactionError reports whether err is or wraps a StorageTransactionError
func IsStorageTransactionError(err error) bool {
	var target *StorageTransactionError
	return errors.As(err, &target)
}

// ErrDomainSyncNotConfigured is returned when the Emailit API key is missing
var ErrDomainSyncNotConfigured = errors.New("emailit api key is not configured")
