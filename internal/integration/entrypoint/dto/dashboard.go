package dto

import (
	"github.com/pocketwatch/backend/internal/application/usecase/report"
)

// MonthlySummaryResponse represents one month in the yearly summary response.
type MonthlySummaryResponse struct {
	Month      int    `json:"month"`
	Income     string `json:"income"`
	Expenses   string `json:"expenses"`
	Savings    string `json:"savings"`
	Cumulative string `json:"cumulative"`
}

// YearSummaryResponse represents the yearly summary response.
type YearSummaryResponse struct {
	Year   int                      `json:"year"`
	Months []MonthlySummaryResponse `json:"months"`
}

// CategoryTotalResponse represents one category slice in the breakdown response.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// CategoryBreakdownResponse represents the category breakdown response.
type CategoryBreakdownResponse struct {
	Year       int                     `json:"year"`
	Month      int                     `json:"month"`
	Categories []CategoryTotalResponse `json:"categories"`
}

// BudgetStatusResponse represents the budget status response.
type BudgetStatusResponse struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Spending      string `json:"spending"`
	Income        string `json:"income"`
	Budget        string `json:"budget"`
	Remaining     string `json:"remaining"`
	UsedPct       string `json:"used_pct"`
	SavingsGoal   string `json:"savings_goal"`
	TotalSaved    string `json:"total_saved"`
	GoalRemaining string `json:"goal_remaining"`
	GoalPct       string `json:"goal_pct"`
}

// ToYearSummaryResponse converts monthly aggregates to a YearSummaryResponse DTO.
func ToYearSummaryResponse(year int, months []report.MonthlyAggregate) YearSummaryResponse {
	items := make([]MonthlySummaryResponse, 0, len(months))
	for _, m := range months {
		items = append(items, MonthlySummaryResponse{
			Month:      m.Month,
			Income:     m.Income.String(),
			Expenses:   m.Expenses.String(),
			Savings:    m.Savings.String(),
			Cumulative: m.Cumulative.String(),
		})
	}
	return YearSummaryResponse{Year: year, Months: items}
}

// ToCategoryBreakdownResponse converts category totals to a CategoryBreakdownResponse DTO.
func ToCategoryBreakdownResponse(year, month int, categories []report.CategoryTotal) CategoryBreakdownResponse {
	items := make([]CategoryTotalResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, CategoryTotalResponse{
			Category: string(c.Category),
			Total:    c.Total.String(),
		})
	}
	return CategoryBreakdownResponse{Year: year, Month: month, Categories: items}
}

// ToBudgetStatusResponse converts a budget status to a BudgetStatusResponse DTO.
func ToBudgetStatusResponse(status report.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Year:          status.Year,
		Month:         status.Month,
		Spending:      status.Spending.String(),
		Income:        status.Income.String(),
		Budget:        status.Budget.String(),
		Remaining:     status.Remaining.String(),
		UsedPct:       status.UsedPct.StringFixed(2),
		SavingsGoal:   status.SavingsGoal.String(),
		TotalSaved:    status.TotalSaved.String(),
		GoalRemaining: status.GoalRemaining.String(),
		GoalPct:       status.GoalPct.StringFixed(2),
	}
}
