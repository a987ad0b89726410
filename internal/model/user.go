package model

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        int
	Name      string
	Email     string
	Password  string
	Balance   decimal.Decimal
	IsAdmin   bool
	Spin      SpinState
	Version   int64 // Версия записи для условного обновления (compare-and-set)
	CreatedAt time.Time
}

type UserClaims struct {
	LoginAt int64 `json:"login_at"` // Время логина в миллисекундах, переживает refresh
	Admin   bool  `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	User         *User
}

// Registration - данные регистрации вместе с кодом подтверждения из письма
type Registration struct {
	Name     string
	Email    string
	Password string
	OTP      string
}

// NormalizeEmail - почта хранится и ищется в нижнем регистре
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
