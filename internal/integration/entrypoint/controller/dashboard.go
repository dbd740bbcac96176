package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pocketwatch/backend/internal/application/usecase/dashboard"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	summaryUseCase   *dashboard.GetYearSummaryUseCase
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase
	budgetUseCase    *dashboard.GetBudgetStatusUseCase
	now              func() time.Time
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	summaryUseCase *dashboard.GetYearSummaryUseCase,
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	budgetUseCase *dashboard.GetBudgetStatusUseCase,
) *DashboardController {
	return &DashboardController{
		summaryUseCase:   summaryUseCase,
		breakdownUseCase: breakdownUseCase,
		budgetUseCase:    budgetUseCase,
		now:              time.Now,
	}
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	year := c.yearParam(ctx)

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetYearSummaryInput{Year: year})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToYearSummaryResponse(output.Year, output.Months))
}

// Breakdown handles GET /dashboard/breakdown requests.
func (c *DashboardController) Breakdown(ctx *gin.Context) {
	year, month := c.yearMonthParams(ctx)

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{
		Year:  year,
		Month: month,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute breakdown",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(year, int(month)-1, output.Categories))
}

// Budget handles GET /dashboard/budget requests.
func (c *DashboardController) Budget(ctx *gin.Context) {
	year, month := c.yearMonthParams(ctx)

	output, err := c.budgetUseCase.Execute(ctx.Request.Context(), dashboard.GetBudgetStatusInput{
		Year:  year,
		Month: month,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute budget status",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetStatusResponse(output.Status))
}

// yearParam reads the year query parameter, defaulting to the current year.
func (c *DashboardController) yearParam(ctx *gin.Context) int {
	if yearStr := ctx.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			return year
		}
	}
	return c.now().Year()
}

// yearMonthParams reads the year and month (1-12) query parameters,
// defaulting to the current calendar month.
func (c *DashboardController) yearMonthParams(ctx *gin.Context) (int, time.Month) {
	year := c.yearParam(ctx)
	if monthStr := ctx.Query("month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil && month >= 1 && month <= 12 {
			return year, time.Month(month)
		}
	}
	return year, c.now().Month()
}
