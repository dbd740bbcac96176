package entity

import "github.com/shopspring/decimal"

// Settings holds the per-user (or per-device) budgeting configuration.
// Settings are never deleted: a missing document or row always resolves
// to the defaults.
type Settings struct {
	MonthlyBudget decimal.Decimal
	SavingsGoal   decimal.Decimal
}

// DefaultSettings returns the settings applied on first access.
func DefaultSettings() *Settings {
	return &Settings{
		MonthlyBudget: decimal.NewFromInt(3000),
		SavingsGoal:   decimal.NewFromInt(5000),
	}
}
