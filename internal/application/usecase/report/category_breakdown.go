package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// CategoryTotal is one slice of the monthly spending breakdown.
type CategoryTotal struct {
	Category entity.Category
	Total    decimal.Decimal
}

// CategoryBreakdown sums the expense transactions of one calendar month per
// category. Categories with no spending are omitted; the result follows the
// fixed category order so the output is stable.
func CategoryBreakdown(transactions []*entity.Transaction, year int, month time.Month) []CategoryTotal {
	totals := make(map[entity.Category]decimal.Decimal)

	for _, txn := range transactions {
		if txn.Type != entity.TransactionTypeExpense {
			continue
		}
		createdAt := txn.CreatedAt.In(time.Local)
		if createdAt.Year() != year || createdAt.Month() != month {
			continue
		}
		category := txn.Category
		if !entity.IsValidCategory(category) {
			category = entity.CategoryOther
		}
		totals[category] = totals[category].Add(txn.Amount)
	}

	breakdown := make([]CategoryTotal, 0, len(totals))
	for _, category := range entity.Categories() {
		if total, ok := totals[category]; ok {
			breakdown = append(breakdown, CategoryTotal{Category: category, Total: total})
		}
	}

	return breakdown
}
