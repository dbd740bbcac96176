package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

type fakeGateway struct {
	current      *entity.Settings
	writtenPatch *adapter.SettingsPatch
	outcome      session.MutationOutcome
}

func (g *fakeGateway) ReadSettings(context.Context) *entity.Settings {
	return g.current
}

func (g *fakeGateway) WriteSettings(_ context.Context, patch adapter.SettingsPatch) (*entity.Settings, session.MutationOutcome) {
	g.writtenPatch = &patch
	merged := *g.current
	if patch.MonthlyBudget != nil {
		merged.MonthlyBudget = *patch.MonthlyBudget
	}
	if patch.SavingsGoal != nil {
		merged.SavingsGoal = *patch.SavingsGoal
	}
	return &merged, g.outcome
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestGetSettingsReturnsCurrentValues(t *testing.T) {
	gateway := &fakeGateway{current: entity.DefaultSettings()}
	uc := NewGetSettingsUseCase(gateway)

	output, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !output.MonthlyBudget.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("monthly budget = %s, want 3000", output.MonthlyBudget)
	}
	if !output.SavingsGoal.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("savings goal = %s, want 5000", output.SavingsGoal)
	}
}

func TestUpdateSettingsRejectsNonPositiveValues(t *testing.T) {
	tests := []struct {
		name    string
		input   UpdateSettingsInput
		wantErr error
	}{
		{"zero budget", UpdateSettingsInput{MonthlyBudget: decPtr(0)}, domainerror.ErrInvalidMonthlyBudget},
		{"negative budget", UpdateSettingsInput{MonthlyBudget: decPtr(-100)}, domainerror.ErrInvalidMonthlyBudget},
		{"zero goal", UpdateSettingsInput{SavingsGoal: decPtr(0)}, domainerror.ErrInvalidSavingsGoal},
		{"negative goal", UpdateSettingsInput{SavingsGoal: decPtr(-1)}, domainerror.ErrInvalidSavingsGoal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{current: entity.DefaultSettings()}
			uc := NewUpdateSettingsUseCase(gateway)

			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if gateway.writtenPatch != nil {
				t.Error("gateway must not be reached on validation failure")
			}
		})
	}
}

func TestUpdateSettingsMergesPartialPatch(t *testing.T) {
	gateway := &fakeGateway{current: entity.DefaultSettings(), outcome: session.OutcomePersisted}
	uc := NewUpdateSettingsUseCase(gateway)

	output, err := uc.Execute(context.Background(), UpdateSettingsInput{MonthlyBudget: decPtr(2500)})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Outcome != session.OutcomePersisted {
		t.Errorf("outcome = %q, want persisted", output.Outcome)
	}
	if !output.MonthlyBudget.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("monthly budget = %s, want 2500", output.MonthlyBudget)
	}
	if !output.SavingsGoal.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("savings goal = %s, untouched field must survive", output.SavingsGoal)
	}
	if gateway.writtenPatch.SavingsGoal != nil {
		t.Error("absent field must stay nil in the patch")
	}
}
