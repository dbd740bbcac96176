package transaction

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for a partial transaction update.
// Nil fields are left untouched.
type UpdateTransactionInput struct {
	ID       string
	Title    *string
	Amount   *decimal.Decimal
	Type     *entity.TransactionType
	Category *entity.Category
	Comment  *string
	Date     *string
}

// UpdateTransactionOutput represents the output of a transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
	Outcome     session.MutationOutcome
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	gateway Gateway
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(gateway Gateway) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{gateway: gateway}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	patch := adapter.TransactionPatch{
		Amount:  input.Amount,
		Comment: input.Comment,
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if input.Amount != nil && input.Amount.IsNegative() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNegativeAmount,
			"amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		patch.Type = input.Type
	}
	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
		patch.Category = input.Category
	}
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		patch.Date = input.Date
	}

	result := uc.gateway.Update(ctx, input.ID, patch)
	if result.Outcome == session.OutcomeFailed {
		if errors.Is(result.Err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, result.Err
	}

	return &UpdateTransactionOutput{
		Transaction: result.Transaction,
		Outcome:     result.Outcome,
	}, nil
}
