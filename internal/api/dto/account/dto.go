package account

import "github.com/shopspring/decimal"

// Profile - аккаунт без пароля. Время в миллисекундах, 0 если не задано
type Profile struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Balance           decimal.Decimal `json:"balance"`
	IsAdmin           bool            `json:"isAdmin"`
	SpinCount         int             `json:"spinCount"`
	SpinWindowStart   int64           `json:"spinWindowStart"`
	LastSpinTimestamp int64           `json:"lastSpinTimestamp"`
}

type EmailChangeRequest struct {
	NewEmail string `json:"newEmail"`
}

type VerifyEmailChangeRequest struct {
	OTP string `json:"otp"`
}

type VerifyEmailChangeResponse struct {
	Success bool    `json:"success"`
	User    Profile `json:"user"`
}
