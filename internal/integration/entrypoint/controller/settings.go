package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/usecase/settings"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/dto"
)

// SettingsController handles settings endpoints.
type SettingsController struct {
	getUseCase    *settings.GetSettingsUseCase
	updateUseCase *settings.UpdateSettingsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve settings",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SettingsResponse{
		MonthlyBudget: output.MonthlyBudget.String(),
		SavingsGoal:   output.SavingsGoal.String(),
	})
}

// Update handles PATCH /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := settings.UpdateSettingsInput{}
	if req.MonthlyBudget != nil {
		budget := decimal.NewFromFloat(*req.MonthlyBudget)
		input.MonthlyBudget = &budget
	}
	if req.SavingsGoal != nil {
		goal := decimal.NewFromFloat(*req.SavingsGoal)
		input.SavingsGoal = &goal
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var settingsErr *domainerror.SettingsError
		if errors.As(err, &settingsErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: settingsErr.Message,
				Code:  string(settingsErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to update settings",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SettingsResponse{
		MonthlyBudget: output.MonthlyBudget.String(),
		SavingsGoal:   output.SavingsGoal.String(),
		Outcome:       string(output.Outcome),
	})
}
