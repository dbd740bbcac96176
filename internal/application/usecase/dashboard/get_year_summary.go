package dashboard

import (
	"context"

	"github.com/pocketwatch/backend/internal/application/usecase/report"
)

// GetYearSummaryInput represents the input for the yearly summary.
type GetYearSummaryInput struct {
	Year int
}

// GetYearSummaryOutput represents the output of the yearly summary.
type GetYearSummaryOutput struct {
	Year   int
	Months []report.MonthlyAggregate
}

// GetYearSummaryUseCase handles the twelve-month income/expense/savings view.
type GetYearSummaryUseCase struct {
	gateway Gateway
}

// NewGetYearSummaryUseCase creates a new GetYearSummaryUseCase instance.
func NewGetYearSummaryUseCase(gateway Gateway) *GetYearSummaryUseCase {
	return &GetYearSummaryUseCase{gateway: gateway}
}

// Execute computes the summary over the session's current transaction view.
func (uc *GetYearSummaryUseCase) Execute(_ context.Context, input GetYearSummaryInput) (*GetYearSummaryOutput, error) {
	return &GetYearSummaryOutput{
		Year:   input.Year,
		Months: report.YearSummary(uc.gateway.Transactions(), input.Year),
	}, nil
}
