package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// SettingsModel represents the settings table: one row per user, upserted.
type SettingsModel struct {
	UserID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MonthlyBudget decimal.Decimal `gorm:"column:monthly_budget;type:decimal(15,2);not null"`
	SavingsGoal   decimal.Decimal `gorm:"column:savings_goal;type:decimal(15,2);not null"`
}

// TableName returns the table name for the SettingsModel.
func (SettingsModel) TableName() string {
	return "settings"
}

// ToEntity converts a SettingsModel to domain Settings.
func (m *SettingsModel) ToEntity() *entity.Settings {
	return &entity.Settings{
		MonthlyBudget: m.MonthlyBudget,
		SavingsGoal:   m.SavingsGoal,
	}
}

// SettingsFromEntity creates a SettingsModel row for the given user.
func SettingsFromEntity(userID uuid.UUID, settings *entity.Settings) *SettingsModel {
	return &SettingsModel{
		UserID:        userID,
		MonthlyBudget: settings.MonthlyBudget,
		SavingsGoal:   settings.SavingsGoal,
	}
}
