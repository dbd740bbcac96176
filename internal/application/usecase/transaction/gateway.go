// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

// Gateway is the session-aware dispatch surface the transaction use cases
// run against. *session.Coordinator satisfies it.
type Gateway interface {
	Transactions() []*entity.Transaction
	Refresh(ctx context.Context)
	Create(ctx context.Context, draft entity.TransactionDraft) session.MutationResult
	Update(ctx context.Context, id string, patch adapter.TransactionPatch) session.MutationResult
	Delete(ctx context.Context, id string) session.MutationResult
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTitle,
			"title must not be empty",
			domainerror.ErrEmptyTitle,
		)
	}
	return trimmed, nil
}

func validateType(transactionType entity.TransactionType) error {
	if !entity.IsValidTransactionType(transactionType) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateCategory(category entity.Category) error {
	if !entity.IsValidCategory(category) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidCategory,
			"category is not one of the known set",
			domainerror.ErrInvalidCategory,
		)
	}
	return nil
}

func validateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be in YYYY-MM-DD format",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}
