package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	"vault_backend/internal/config"
)

const (
	dsnName             = "PG_DSN"
	maxConnsName        = "PG_MAX_CONNS"
	connectTimeoutName  = "PG_CONNECT_TIMEOUT"
	defaultConnectLimit = 5 * time.Second
)

type pgConfig struct {
	dsn            string
	maxConns       int32
	connectTimeout time.Duration
}

// NewPGConfig читает подключение к Postgres. PG_MAX_CONNS 0 оставляет значение pgxpool по умолчанию
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	cfg := &pgConfig{
		dsn:            dsn,
		connectTimeout: defaultConnectLimit,
	}

	if raw := os.Getenv(maxConnsName); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s: %q", maxConnsName, raw)
		}
		cfg.maxConns = int32(n)
	}

	if raw := os.Getenv(connectTimeoutName); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", connectTimeoutName, raw)
		}
		cfg.connectTimeout = d
	}

	return cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) MaxConns() int32 {
	return cfg.maxConns
}

func (cfg *pgConfig) ConnectTimeout() time.Duration {
	return cfg.connectTimeout
}
