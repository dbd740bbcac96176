package dashboard

import (
	"context"
	"time"

	"github.com/pocketwatch/backend/internal/application/usecase/report"
)

// GetCategoryBreakdownInput represents the input for the category breakdown.
type GetCategoryBreakdownInput struct {
	Year  int
	Month time.Month
}

// GetCategoryBreakdownOutput represents the output of the category breakdown.
type GetCategoryBreakdownOutput struct {
	Categories []report.CategoryTotal
}

// GetCategoryBreakdownUseCase handles the per-category expense breakdown.
type GetCategoryBreakdownUseCase struct {
	gateway Gateway
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(gateway Gateway) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{gateway: gateway}
}

// Execute computes the breakdown for one calendar month.
func (uc *GetCategoryBreakdownUseCase) Execute(_ context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	return &GetCategoryBreakdownOutput{
		Categories: report.CategoryBreakdown(uc.gateway.Transactions(), input.Year, input.Month),
	}, nil
}
