package env

import (
	"fmt"
	"os"
	"strconv"
	"vault_backend/internal/config"
)

const (
	rateLimitRPSEnvName   = "OTP_RATE_LIMIT_RPS"
	rateLimitBurstEnvName = "OTP_RATE_LIMIT_BURST"

	defaultRateLimitRPS   = 0.2 // Один запрос в 5 секунд
	defaultRateLimitBurst = 3
)

type rateLimitConfig struct {
	rps   float64
	burst int
}

func NewRateLimitConfig() (config.RateLimitConfig, error) {
	cfg := &rateLimitConfig{
		rps:   defaultRateLimitRPS,
		burst: defaultRateLimitBurst,
	}

	if raw := os.Getenv(rateLimitRPSEnvName); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", rateLimitRPSEnvName, raw)
		}
		cfg.rps = rps
	}
	if raw := os.Getenv(rateLimitBurstEnvName); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", rateLimitBurstEnvName, raw)
		}
		cfg.burst = burst
	}
	return cfg, nil
}

func (cfg *rateLimitConfig) RPS() float64 { return cfg.rps }
func (cfg *rateLimitConfig) Burst() int   { return cfg.burst }
