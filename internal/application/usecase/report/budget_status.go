package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// BudgetStatus compares one month of activity against the configured budget
// and the cumulative savings against the end-of-year goal.
type BudgetStatus struct {
	Year  int
	Month int // 0-11

	Spending  decimal.Decimal
	Income    decimal.Decimal
	Budget    decimal.Decimal
	Remaining decimal.Decimal // Budget - Spending, may be negative
	UsedPct   decimal.Decimal // Spending / Budget * 100, zero when no budget

	SavingsGoal   decimal.Decimal
	TotalSaved    decimal.Decimal // cumulative savings through Month
	GoalRemaining decimal.Decimal // SavingsGoal - TotalSaved, floored at zero
	GoalPct       decimal.Decimal // capped at 100
}

var hundred = decimal.NewFromInt(100)

// BudgetStatusFor derives the budget standing of one calendar month from the
// transaction collection and the current settings.
func BudgetStatusFor(transactions []*entity.Transaction, settings *entity.Settings, year int, month time.Month) BudgetStatus {
	if settings == nil {
		settings = entity.DefaultSettings()
	}

	income, spending := MonthlyTotals(transactions, year, month)

	status := BudgetStatus{
		Year:        year,
		Month:       int(month) - 1,
		Spending:    spending,
		Income:      income,
		Budget:      settings.MonthlyBudget,
		Remaining:   settings.MonthlyBudget.Sub(spending),
		SavingsGoal: settings.SavingsGoal,
		UsedPct:     decimal.Zero,
	}

	if settings.MonthlyBudget.IsPositive() {
		status.UsedPct = spending.Div(settings.MonthlyBudget).Mul(hundred)
	}

	summary := YearSummary(transactions, year)
	status.TotalSaved = summary[status.Month].Cumulative

	status.GoalRemaining = settings.SavingsGoal.Sub(status.TotalSaved)
	if status.GoalRemaining.IsNegative() {
		status.GoalRemaining = decimal.Zero
	}

	status.GoalPct = decimal.Zero
	if settings.SavingsGoal.IsPositive() {
		status.GoalPct = status.TotalSaved.Div(settings.SavingsGoal).Mul(hundred)
		if status.GoalPct.GreaterThan(hundred) {
			status.GoalPct = hundred
		}
		if status.GoalPct.IsNegative() {
			status.GoalPct = decimal.Zero
		}
	}

	return status
}
