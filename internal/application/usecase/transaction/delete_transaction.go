package transaction

import (
	"context"

	"github.com/pocketwatch/backend/internal/application/session"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ID string
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Outcome session.MutationOutcome
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	gateway Gateway
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(gateway Gateway) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{gateway: gateway}
}

// Execute performs the transaction deletion. Deleting an absent id succeeds.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	result := uc.gateway.Delete(ctx, input.ID)
	return &DeleteTransactionOutput{Outcome: result.Outcome}, nil
}
