package config

import (
	"time"
	"vault_backend/internal/model"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type HTTPConfig interface {
	Address() string
	RequestTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
	ConnectTimeout() time.Duration
}

type StorageConfig interface {
	Driver() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type SMTPConfig interface {
	Host() string
	Port() int
	User() string
	Password() string
	From() string
	// Enabled - заданы ли учетные данные для отправки писем
	Enabled() bool
}

type RedisConfig interface {
	URL() string
	Enabled() bool
}

type AdminConfig interface {
	Name() string
	Email() string
	Password() string
}

type RateLimitConfig interface {
	RPS() float64
	Burst() int
}

type LogConfig interface {
	Level() string
}

// WheelSeedConfig - начальные данные, которыми заполняется пустое хранилище
type WheelSeedConfig interface {
	DailyLimit() int
	Outcomes() []model.Outcome
	SignupBonus() decimal.Decimal
	AnnouncementEnabled() bool
	AnnouncementImageURL() string
}
