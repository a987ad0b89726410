package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OutcomeKind string

const (
	// KindCreditBalance - выигрыш зачисляется на баланс
	KindCreditBalance OutcomeKind = "balance"
	// KindNoEffect - сектор без выплаты
	KindNoEffect OutcomeKind = "none"
)

func (k OutcomeKind) Valid() bool {
	return k == KindCreditBalance || k == KindNoEffect
}

// Outcome - сектор колеса
type Outcome struct {
	ID      int
	Label   string
	Kind    OutcomeKind
	Amount  decimal.Decimal // Имеет смысл только для KindCreditBalance
	Weight  float64
	Premium bool
}

type WheelConfig struct {
	Outcomes   []Outcome
	DailyLimit int
	UpdatedAt  time.Time
}

// WheelConfigPatch - частичное обновление конфига, nil поля не меняются
type WheelConfigPatch struct {
	Outcomes   []Outcome
	DailyLimit *int
}

type SpinState struct {
	SpinCount   int
	WindowStart time.Time // Нулевое значение - окно еще не открывалось
	LastSpinAt  time.Time
}

type SpinResult struct {
	Outcome      Outcome
	OutcomeIndex int
	Balance      decimal.Decimal
	State        SpinState
}

type SpinStatus struct {
	DailyLimit  int
	SpinsLeft   int
	Countdown   time.Duration
	HasCooldown bool
	State       SpinState
	Balance     decimal.Decimal
}

// SpinRecord - запись журнала спинов
type SpinRecord struct {
	ID           int64
	UserID       int
	OutcomeID    int
	Label        string
	Kind         OutcomeKind
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}
