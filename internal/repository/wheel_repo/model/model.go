package model

import "github.com/shopspring/decimal"

// Outcome - сектор в том виде, в котором он лежит в JSONB колонке outcomes
type Outcome struct {
	ID      int             `json:"id"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`
	Value   decimal.Decimal `json:"value"`
	Weight  float64         `json:"weight"`
	Premium bool            `json:"premium,omitempty"`
}
