package dto

import (
	"time"

	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Title    string   `json:"title" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Type     string   `json:"type" binding:"required,oneof=expense income"`
	Category string   `json:"category,omitempty"`
	Comment  string   `json:"comment,omitempty"`
	Date     string   `json:"date,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Title    *string  `json:"title,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
	Type     *string  `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Category *string  `json:"category,omitempty"`
	Comment  *string  `json:"comment,omitempty"`
	Date     *string  `json:"date,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    string    `json:"amount"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Comment   string    `json:"comment,omitempty"`
	Date      string    `json:"date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionListResponse represents the response for transaction listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// MutationResponse wraps a transaction with its persistence outcome, so
// clients can tell a durable write from a cache-only one.
type MutationResponse struct {
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Outcome     string               `json:"outcome"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        txn.ID,
		Title:     txn.Title,
		Amount:    txn.Amount.String(),
		Type:      string(txn.Type),
		Category:  string(txn.Category),
		Comment:   txn.Comment,
		Date:      txn.Date,
		CreatedAt: txn.CreatedAt,
	}
}

// ToTransactionListResponse converts a transaction collection to a TransactionListResponse DTO.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		items = append(items, ToTransactionResponse(txn))
	}
	return TransactionListResponse{
		Transactions: items,
		Total:        len(items),
	}
}

// ToMutationResponse converts a mutation result to a MutationResponse DTO.
func ToMutationResponse(txn *entity.Transaction, outcome session.MutationOutcome) MutationResponse {
	response := MutationResponse{Outcome: string(outcome)}
	if txn != nil {
		converted := ToTransactionResponse(txn)
		response.Transaction = &converted
	}
	return response
}
