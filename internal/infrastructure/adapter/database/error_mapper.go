package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

// Backend names the PostgreSQL medium in storage errors
const Backend = "postgres"

// ErrorKind classifies a database failure
type ErrorKind string

const (
	KindDuplicateKey ErrorKind = "duplicate_key"
	KindLock         ErrorKind = "lock"
	KindConnection   ErrorKind = "connection"
	KindTimeout      ErrorKind = "timeout"
	KindConstraint   ErrorKind = "constraint"
	KindUnknown      ErrorKind = "unknown"
)

// ErrorMapper maps database errors to domain storage errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// Classify returns the kind of a database error
func (m *ErrorMapper) Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize access") ||
		strings.Contains(errMsg, "lock timeout"):
		return KindLock

	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		return KindDuplicateKey

	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint") ||
		strings.Contains(errMsg, "violates not-null"):
		return KindConstraint

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "server closed"):
		return KindConnection

	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return KindTimeout

	default:
		return KindUnknown
	}
}

// IsTransient reports whether retrying the operation may succeed
func (m *ErrorMapper) IsTransient(err error) bool {
	switch m.Classify(err) {
	case KindLock, KindConnection, KindTimeout:
		return true
	default:
		return false
	}
}

// MapError wraps a database error as a ledger StorageError. Context
// cancellation is returned unchanged.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	return errs.NewStorageError(operation, Backend, fmt.Errorf("%s: %w", m.Classify(err), err))
}
