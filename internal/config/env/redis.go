package env

import (
	"os"
	"vault_backend/internal/config"
)

const redisURLEnvName = "REDIS_URL"

type redisConfig struct {
	url string
}

// NewRedisConfig - Redis необязателен, без него коды хранятся в памяти процесса
func NewRedisConfig() config.RedisConfig {
	return &redisConfig{url: cleanVar(os.Getenv(redisURLEnvName))}
}

func (cfg *redisConfig) URL() string {
	return cfg.url
}

func (cfg *redisConfig) Enabled() bool {
	return cfg.url != ""
}
