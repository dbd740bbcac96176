// Package report derives aggregate financial projections from a raw
// transaction collection. Everything in this package is pure and
// backend-agnostic: it never touches a store.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// MonthlyAggregate is one month of a year summary. Savings may be negative;
// Cumulative is the running sum of savings across months 0..Month and carries
// forward through months with no transactions.
type MonthlyAggregate struct {
	Month      int // 0-11
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Savings    decimal.Decimal
	Cumulative decimal.Decimal
}

// YearSummary groups the given transactions by calendar month of their
// effective date-time (local time) and returns twelve aggregates for the
// requested year, including the end-of-year cumulative savings projection.
func YearSummary(transactions []*entity.Transaction, year int) []MonthlyAggregate {
	months := make([]MonthlyAggregate, 12)
	for i := range months {
		months[i] = MonthlyAggregate{
			Month:      i,
			Income:     decimal.Zero,
			Expenses:   decimal.Zero,
			Savings:    decimal.Zero,
			Cumulative: decimal.Zero,
		}
	}

	for _, txn := range transactions {
		createdAt := txn.CreatedAt.In(time.Local)
		if createdAt.Year() != year {
			continue
		}
		month := int(createdAt.Month()) - 1
		if txn.Type == entity.TransactionTypeIncome {
			months[month].Income = months[month].Income.Add(txn.Amount)
		} else {
			months[month].Expenses = months[month].Expenses.Add(txn.Amount)
		}
	}

	cumulative := decimal.Zero
	for i := range months {
		months[i].Savings = months[i].Income.Sub(months[i].Expenses)
		cumulative = cumulative.Add(months[i].Savings)
		months[i].Cumulative = cumulative
	}

	return months
}

// MonthlyTotals returns the income and expense sums for one calendar month.
func MonthlyTotals(transactions []*entity.Transaction, year int, month time.Month) (income, expenses decimal.Decimal) {
	income = decimal.Zero
	expenses = decimal.Zero

	for _, txn := range transactions {
		createdAt := txn.CreatedAt.In(time.Local)
		if createdAt.Year() != year || createdAt.Month() != month {
			continue
		}
		if txn.Type == entity.TransactionTypeIncome {
			income = income.Add(txn.Amount)
		} else {
			expenses = expenses.Add(txn.Amount)
		}
	}

	return income, expenses
}
