package error

import "errors"

// Store domain errors.
var (
	// ErrNoIdentity is returned when a remote store operation is attempted
	// without a resolvable identity. This is a precondition failure: no
	// network or database access has happened.
	ErrNoIdentity = errors.New("no identity present")

	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StoreErrorCode defines error codes for store errors.
// Format: STO-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	// Precondition errors (01XXXX)
	ErrCodeNoIdentity StoreErrorCode = "STO-010001"

	// Availability errors (02XXXX)
	ErrCodeStoreUnavailable StoreErrorCode = "STO-020001"
)

// StoreError represents a store error with code and message.
type StoreError struct {
	Code    StoreErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given code and message.
func NewStoreError(code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
