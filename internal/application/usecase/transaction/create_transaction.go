package transaction

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/application/usecase/classifier"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Title    string
	Amount   *decimal.Decimal
	Type     entity.TransactionType
	Category entity.Category // optional; empty triggers auto-classification
	Comment  string
	Date     string // optional, "YYYY-MM-DD"
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	Outcome     session.MutationOutcome
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	gateway   Gateway
	suggester adapter.CategorySuggester
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
// The suggester is optional and may be nil.
func NewCreateTransactionUseCase(gateway Gateway, suggester adapter.CategorySuggester) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		gateway:   gateway,
		suggester: suggester,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	if input.Amount == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingAmount,
			"amount is required",
			domainerror.ErrMissingAmount,
		)
	}
	if input.Amount.IsNegative() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNegativeAmount,
			"amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = uc.resolveCategory(ctx, title)
	} else if err := validateCategory(category); err != nil {
		return nil, err
	}

	result := uc.gateway.Create(ctx, entity.TransactionDraft{
		Title:    title,
		Amount:   *input.Amount,
		Type:     input.Type,
		Category: category,
		Comment:  input.Comment,
		Date:     input.Date,
	})

	return &CreateTransactionOutput{
		Transaction: result.Transaction,
		Outcome:     result.Outcome,
	}, nil
}

// resolveCategory runs the keyword classifier and, when it falls through to
// Other, consults the optional suggester. Suggester failures never block
// creation.
func (uc *CreateTransactionUseCase) resolveCategory(ctx context.Context, title string) entity.Category {
	category := classifier.Suggest(title)
	if category != entity.CategoryOther {
		return category
	}
	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return category
	}

	suggested, err := uc.suggester.Suggest(ctx, title)
	if err != nil {
		slog.Debug("category suggestion failed", "title", title, "error", err)
		return category
	}
	if !entity.IsValidCategory(suggested) {
		slog.Debug("category suggestion outside the known set", "title", title, "suggested", suggested)
		return category
	}
	return suggested
}
