package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/application/session"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

// UpdateSettingsInput represents a partial settings update. Nil fields are
// left untouched.
type UpdateSettingsInput struct {
	MonthlyBudget *decimal.Decimal
	SavingsGoal   *decimal.Decimal
}

// UpdateSettingsOutput represents the output of a settings update.
type UpdateSettingsOutput struct {
	MonthlyBudget decimal.Decimal
	SavingsGoal   decimal.Decimal
	Outcome       session.MutationOutcome
}

// UpdateSettingsUseCase handles settings update logic.
type UpdateSettingsUseCase struct {
	gateway Gateway
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(gateway Gateway) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{gateway: gateway}
}

// Execute performs the settings update.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input.MonthlyBudget != nil && !input.MonthlyBudget.IsPositive() {
		return nil, domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidMonthlyBudget,
			"monthly budget must be positive",
			domainerror.ErrInvalidMonthlyBudget,
		)
	}
	if input.SavingsGoal != nil && !input.SavingsGoal.IsPositive() {
		return nil, domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidSavingsGoal,
			"savings goal must be positive",
			domainerror.ErrInvalidSavingsGoal,
		)
	}

	updated, outcome := uc.gateway.WriteSettings(ctx, adapter.SettingsPatch{
		MonthlyBudget: input.MonthlyBudget,
		SavingsGoal:   input.SavingsGoal,
	})

	return &UpdateSettingsOutput{
		MonthlyBudget: updated.MonthlyBudget,
		SavingsGoal:   updated.SavingsGoal,
		Outcome:       outcome,
	}, nil
}
