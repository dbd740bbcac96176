// Package error defines domain-specific errors for the PocketWatch application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the backing store.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrEmptyTitle is returned when the transaction title is empty after trimming.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrMissingAmount is returned when no amount was supplied.
	ErrMissingAmount = errors.New("amount is required")

	// ErrNegativeAmount is returned when the transaction amount is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidTransactionType is returned when the transaction type is not expense or income.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidCategory is returned when the category is not one of the fixed set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidTransactionDate is returned when the supplied calendar date cannot be parsed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyTitle             TransactionErrorCode = "TXN-010001"
	ErrCodeMissingAmount          TransactionErrorCode = "TXN-010002"
	ErrCodeNegativeAmount         TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionType TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidCategory        TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidTransactionDate TransactionErrorCode = "TXN-010006"
	ErrCodeTransactionNotFound    TransactionErrorCode = "TXN-010007"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
