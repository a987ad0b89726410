package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrConfigUnavailable    = errors.New("wheel config unavailable")
	ErrLimitReached         = errors.New("daily spin limit reached")
	ErrPersistenceConflict  = errors.New("concurrent update conflict")
	ErrSpinContention       = errors.New("spin is contended, try again later")
	ErrNoDrawableOutcome    = errors.New("no drawable outcome: total weight must be positive")
	ErrInvalidWeight        = errors.New("outcome weight must be a finite non-negative number")
	ErrInvalidWheelConfig   = errors.New("invalid wheel config")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOTP           = errors.New("invalid or expired OTP")
	ErrOTPNotFound          = errors.New("otp not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrEmailUnchanged       = errors.New("new email must be different")
	ErrInvalidInput         = errors.New("invalid input")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrImageRequired        = errors.New("image content is required")
	ErrMailDelivery         = errors.New("failed to send email")
)

// LimitReachedError - отказ по дневному лимиту, несет время до открытия нового окна
type LimitReachedError struct {
	RetryAfter time.Duration
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrLimitReached, e.RetryAfter.Round(time.Second))
}

func (e *LimitReachedError) Is(target error) bool {
	return target == ErrLimitReached
}

// SessionExpiredError - сессия превысила допустимый возраст
type SessionExpiredError struct {
	Kind string // "Admin" или "Player"
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("Your %s session has expired for security.", e.Kind)
}

func (e *SessionExpiredError) Is(target error) bool {
	return target == ErrSessionExpired
}
