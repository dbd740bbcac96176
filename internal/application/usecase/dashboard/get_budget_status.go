package dashboard

import (
	"context"
	"time"

	"github.com/pocketwatch/backend/internal/application/usecase/report"
)

// GetBudgetStatusInput represents the input for the budget status view.
type GetBudgetStatusInput struct {
	Year  int
	Month time.Month
}

// GetBudgetStatusOutput represents the output of the budget status view.
type GetBudgetStatusOutput struct {
	Status report.BudgetStatus
}

// GetBudgetStatusUseCase handles the budget-vs-spend and goal progress view.
type GetBudgetStatusUseCase struct {
	gateway Gateway
}

// NewGetBudgetStatusUseCase creates a new GetBudgetStatusUseCase instance.
func NewGetBudgetStatusUseCase(gateway Gateway) *GetBudgetStatusUseCase {
	return &GetBudgetStatusUseCase{gateway: gateway}
}

// Execute computes the status for one calendar month against the active
// store's settings.
func (uc *GetBudgetStatusUseCase) Execute(ctx context.Context, input GetBudgetStatusInput) (*GetBudgetStatusOutput, error) {
	settings := uc.gateway.ReadSettings(ctx)
	return &GetBudgetStatusOutput{
		Status: report.BudgetStatusFor(uc.gateway.Transactions(), settings, input.Year, input.Month),
	}, nil
}
