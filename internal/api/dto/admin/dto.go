package admin

import (
	"vault_backend/internal/api/dto/wheel"

	"github.com/shopspring/decimal"
)

type UpdateBalanceRequest struct {
	Email      string          `json:"email"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

type UpdateBalanceResponse struct {
	Success bool            `json:"success"`
	Balance decimal.Decimal `json:"balance"`
}

// UpdateRewardsRequest - частичное обновление, отсутствующее поле не меняется
type UpdateRewardsRequest struct {
	UpdatedRewards []wheel.Reward `json:"updatedRewards"`
	DailySpinLimit *int           `json:"dailySpinLimit"`
}

type UpdateRewardsResponse struct {
	Success bool                 `json:"success"`
	Config  wheel.ConfigResponse `json:"config"`
}
