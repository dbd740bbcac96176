// Package settings contains settings-related use cases.
package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/domain/entity"
)

// Gateway is the session-aware settings surface the use cases run against.
// *session.Coordinator satisfies it.
type Gateway interface {
	ReadSettings(ctx context.Context) *entity.Settings
	WriteSettings(ctx context.Context, patch adapter.SettingsPatch) (*entity.Settings, session.MutationOutcome)
}

// GetSettingsOutput represents the output of reading settings.
type GetSettingsOutput struct {
	MonthlyBudget decimal.Decimal
	SavingsGoal   decimal.Decimal
}

// GetSettingsUseCase handles settings retrieval.
type GetSettingsUseCase struct {
	gateway Gateway
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(gateway Gateway) *GetSettingsUseCase {
	return &GetSettingsUseCase{gateway: gateway}
}

// Execute reads the active store's settings. Store failures surface as the
// defaults, never as an error.
func (uc *GetSettingsUseCase) Execute(ctx context.Context) (*GetSettingsOutput, error) {
	current := uc.gateway.ReadSettings(ctx)
	return &GetSettingsOutput{
		MonthlyBudget: current.MonthlyBudget,
		SavingsGoal:   current.SavingsGoal,
	}, nil
}
