// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// TransactionPatch carries the fields of a transaction update. Nil fields are
// left untouched; a non-nil Date recomputes the record's CreatedAt.
type TransactionPatch struct {
	Title    *string
	Amount   *decimal.Decimal
	Type     *entity.TransactionType
	Category *entity.Category
	Comment  *string
	Date     *string // YYYY-MM-DD
}

// SettingsPatch carries the fields of a settings update. Nil fields are left
// untouched.
type SettingsPatch struct {
	MonthlyBudget *decimal.Decimal
	SavingsGoal   *decimal.Decimal
}

// TransactionStore is the single storage capability behind every read and
// write in the system. Both the local document store and the identity-scoped
// remote store satisfy it, so nothing downstream of the session coordinator
// knows which backend it is talking to.
type TransactionStore interface {
	// List returns all transactions, newest-first.
	List(ctx context.Context) ([]*entity.Transaction, error)

	// Create assigns an id, resolves the effective date-time and persists the
	// draft. It returns the stored record.
	Create(ctx context.Context, draft entity.TransactionDraft) (*entity.Transaction, error)

	// Update merges the patch into the record with the given id and persists.
	// It returns domainerror.ErrTransactionNotFound when no record matches.
	Update(ctx context.Context, id string, patch TransactionPatch) (*entity.Transaction, error)

	// Delete removes the record with the given id. Deleting an absent id is
	// not an error.
	Delete(ctx context.Context, id string) error

	// ReadSettings returns the persisted settings, or the defaults when none
	// have been stored yet.
	ReadSettings(ctx context.Context) (*entity.Settings, error)

	// WriteSettings merges the patch into the persisted settings and returns
	// the result.
	WriteSettings(ctx context.Context, patch SettingsPatch) (*entity.Settings, error)
}
