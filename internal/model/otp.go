package model

import "time"

type OTPPurpose string

const (
	OTPPurposeRegister    OTPPurpose = "register"
	OTPPurposeEmailChange OTPPurpose = "email_change"
)

// OTPEntry - ожидающий подтверждения код
type OTPEntry struct {
	Code      string    `json:"code"`
	NewEmail  string    `json:"new_email,omitempty"` // Только для смены почты
	ExpiresAt time.Time `json:"expires_at"`
}

func (e OTPEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
