// Package model defines database models for the remote store.
//
// The remote schema keeps its own field names (notes, tx_date, created_at);
// this package is the single place where they are normalized to and from the
// domain shape, in both directions on every path.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table.
type TransactionModel struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(255);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category  string          `gorm:"type:varchar(32);not null"`
	Type      string          `gorm:"type:varchar(10);not null"`
	Notes     string          `gorm:"column:notes;type:text"`
	TxDate    string          `gorm:"column:tx_date;type:varchar(10)"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction.
// notes maps to Comment and tx_date to Date.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:        m.ID,
		Title:     m.Title,
		Amount:    m.Amount,
		Type:      entity.TransactionType(m.Type),
		Category:  entity.Category(m.Category),
		Comment:   m.Notes,
		Date:      m.TxDate,
		CreatedAt: m.CreatedAt,
	}
}

// TransactionFromDraft creates a TransactionModel for a new row owned by the
// given user. The id is store-generated and the effective date-time resolves
// from the supplied calendar date at local noon, or the creation instant.
func TransactionFromDraft(userID uuid.UUID, draft entity.TransactionDraft, now time.Time) *TransactionModel {
	return &TransactionModel{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     draft.Title,
		Amount:    draft.Amount,
		Category:  string(draft.Category),
		Type:      string(draft.Type),
		Notes:     draft.Comment,
		TxDate:    draft.Date,
		CreatedAt: entity.ResolveCreatedAt(draft.Date, now),
	}
}
