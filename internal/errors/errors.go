package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrCorruptData  = errors.New("corrupt data")
	ErrStoreIO      = errors.New("store i/o failure")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError indicates a referenced board, list or card doesn't exist.
type NotFoundError struct {
	Resource string // "board", "list", "card"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// CorruptDataError indicates stored bytes are present but don't decode into
// a collection. Retrying reads the same bytes, so callers should reset or alert.
type CorruptDataError struct {
	Key string
	Err error
}

func (e *CorruptDataError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("corrupt data under key %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("corrupt data: %v", e.Err)
}

func (e *CorruptDataError) Unwrap() []error {
	return []error{ErrCorruptData, e.Err}
}

// StoreError indicates the storage backend failed to read or write.
type StoreError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreIO, e.Err}
}

// ValidationError indicates invalid input or a caller logic error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper constructors for common cases

func BoardNotFound(id string) error {
	return &NotFoundError{Resource: "board", ID: id}
}

func ListNotFound(id, boardID string) error {
	return &NotFoundError{Resource: "list", ID: fmt.Sprintf("%s (in board %s)", id, boardID)}
}

func CardNotFound(id, listID string) error {
	return &NotFoundError{Resource: "card", ID: fmt.Sprintf("%s (in list %s)", id, listID)}
}

func Corrupt(key string, err error) error {
	return &CorruptDataError{Key: key, Err: err}
}

func ReadFailed(key string, err error) error {
	return &StoreError{Op: "read", Key: key, Err: err}
}

func WriteFailed(key string, err error) error {
	return &StoreError{Op: "write", Key: key, Err: err}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IDMismatch reports an attempt to replace an entity with one carrying a
// different id, which would orphan the original identity.
func IDMismatch(resource, want, got string) error {
	return &ValidationError{
		Field:   resource + " id",
		Message: fmt.Sprintf("replacement has id %q, expected %q", got, want),
	}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCorruptData checks if an error is a corrupt-data error.
func IsCorruptData(err error) bool {
	return errors.Is(err, ErrCorruptData)
}

// IsStoreIO checks if an error came from the storage backend.
func IsStoreIO(err error) bool {
	return errors.Is(err, ErrStoreIO)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
