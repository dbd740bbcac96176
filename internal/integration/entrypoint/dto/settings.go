package dto

// UpdateSettingsRequest represents the request body for a settings update.
type UpdateSettingsRequest struct {
	MonthlyBudget *float64 `json:"monthly_budget,omitempty"`
	SavingsGoal   *float64 `json:"savings_goal,omitempty"`
}

// SettingsResponse represents the settings in API responses.
type SettingsResponse struct {
	MonthlyBudget string `json:"monthly_budget"`
	SavingsGoal   string `json:"savings_goal"`
	Outcome       string `json:"outcome,omitempty"`
}
