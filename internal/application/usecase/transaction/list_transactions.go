package transaction

import (
	"context"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	// Refresh forces a reload from the active store before reading the cache.
	Refresh bool
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	gateway Gateway
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(gateway Gateway) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{gateway: gateway}
}

// Execute returns the session's current transaction view, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Refresh {
		uc.gateway.Refresh(ctx)
	}
	return &ListTransactionsOutput{Transactions: uc.gateway.Transactions()}, nil
}
