package env

import (
	"fmt"
	"os"
	"strings"
	"vault_backend/internal/config"
)

const storageEnvName = "STORAGE"

type storageConfig struct {
	driver string
}

// NewStorageConfig - по умолчанию postgres, memory нужен для локального запуска без БД
func NewStorageConfig() (config.StorageConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv(storageEnvName)))
	if driver == "" {
		driver = config.StoragePostgres
	}
	if driver != config.StoragePostgres && driver != config.StorageMemory {
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	return &storageConfig{driver: driver}, nil
}

func (cfg *storageConfig) Driver() string {
	return cfg.driver
}
