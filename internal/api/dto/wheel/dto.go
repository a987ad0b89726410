package wheel

import "github.com/shopspring/decimal"

// Reward - сектор колеса в формате клиента
type Reward struct {
	ID      int             `json:"id"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`  // balance | none
	Value   decimal.Decimal `json:"value"` // Сумма зачисления для type=balance
	Weight  float64         `json:"weight"`
	Premium bool            `json:"premium,omitempty"`
}

type Settings struct {
	DailySpinLimit int `json:"dailySpinLimit"`
}

type ConfigResponse struct {
	Rewards  []Reward `json:"rewards"`
	Settings Settings `json:"settings"`
}

type SpinResponse struct {
	Outcome           Reward          `json:"outcome"`
	OutcomeIndex      int             `json:"outcomeIndex"`
	NewBalance        decimal.Decimal `json:"newBalance"`
	SpinCount         int             `json:"spinCount"`
	WindowStart       int64           `json:"windowStart"`       // Миллисекунды
	LastSpinTimestamp int64           `json:"lastSpinTimestamp"` // Миллисекунды
}

type StatusResponse struct {
	DailySpinLimit    int             `json:"dailySpinLimit"`
	SpinsLeft         int             `json:"spinsLeft"`
	CountdownMs       *int64          `json:"countdownMs,omitempty"` // Нет, пока спины остаются
	SpinCount         int             `json:"spinCount"`
	SpinWindowStart   int64           `json:"spinWindowStart"`
	LastSpinTimestamp int64           `json:"lastSpinTimestamp"`
	Balance           decimal.Decimal `json:"balance"`
}

type HistoryItem struct {
	ID           int64           `json:"id"`
	RewardID     int             `json:"rewardId"`
	Label        string          `json:"label"`
	Type         string          `json:"type"`
	Value        decimal.Decimal `json:"value"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Timestamp    int64           `json:"timestamp"`
}

type HistoryResponse struct {
	Spins []HistoryItem `json:"spins"`
}
