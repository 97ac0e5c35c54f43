package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlreadyCheckedIn is returned for a second check-in on the same day.
// The accompanying result carries the unchanged streak.
var ErrAlreadyCheckedIn = errors.New("already checked in today")

// ConfigurationError means required call context was missing. It is always
// the caller's bug and never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ErrMissingGuildID is returned when an operation has no guild attribution
var ErrMissingGuildID = &ConfigurationError{Message: "guild id is required"}

// ValidationError means a caller-supplied argument was out of the allowed
// range. The message names the failing rule so it can be echoed verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientFundsError means a debit exceeded the balance where the
// feature enforces a floor. The raw ledger has no such floor.
type InsufficientFundsError struct {
	Currency string // "cash" or "xp"
	Have     int64
	Need     int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s: have %d, need %d", e.Currency, e.Have, e.Need)
}

// NotRegisteredError means the operation requires a prior account
type NotRegisteredError struct {
	UserID int64
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("user %d is not registered", e.UserID)
}

// CooldownError means the sender is still inside the gift cooldown window
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, try again in %s", e.Remaining.Round(time.Second))
}

// StorageError wraps a persistence failure with the operation name. The
// caller sees a generic failure; the process never crashes over one bad
// query.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func newStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
