package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors surfaced to controllers. Controllers translate these to
// HTTP statuses; services never format user-facing messages.
var (
	// ErrNotFound reports an operation against a submission or entity id
	// that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a uniqueness violation: a duplicate rating for the
	// same entity within one submission.
	ErrConflict = errors.New("duplicate rating for entity in submission")
)

// ValidationError reports input rejected before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// wrapStoreError wraps persistence-layer failures so callers can tell them
// apart from domain errors. Not retried here; retry policy belongs to the
// transport layer.
func wrapStoreError(op string, err error) error {
	return fmt.Errorf("%s: store error: %w", op, err)
}

// isDuplicateKeyError detects unique-constraint violations from the store.
// GORM translates MySQL error 1062 when error translation is enabled; the
// message check covers drivers that surface the raw error.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
