package error

import "errors"

// Session domain errors.
var (
	// ErrInvalidSessionToken is returned when a presented session token
	// cannot be validated.
	ErrInvalidSessionToken = errors.New("invalid session token")

	// ErrSessionExpired is returned when the stored session token has expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrRateLimited is returned when too many sign-in attempts were made.
	ErrRateLimited = errors.New("too many attempts")
)

// SessionErrorCode defines error codes for session errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	ErrCodeInvalidSessionToken SessionErrorCode = "SES-010001"
	ErrCodeSessionExpired      SessionErrorCode = "SES-010002"
	ErrCodeRateLimited         SessionErrorCode = "SES-020001"
)

// SessionError represents a session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
