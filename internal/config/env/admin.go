package env

import (
	"errors"
	"os"
	"strings"
	"vault_backend/internal/config"
)

const (
	adminNameEnvName     = "ADMIN_NAME"
	adminEmailEnvName    = "ADMIN_EMAIL"
	adminPasswordEnvName = "ADMIN_PASSWORD"

	defaultAdminName  = "Vault Administrator"
	defaultAdminEmail = "admin@boss.com"
)

type adminConfig struct {
	name     string
	email    string
	password string
}

func NewAdminConfig() (config.AdminConfig, error) {
	password := os.Getenv(adminPasswordEnvName)
	if len(password) == 0 {
		return nil, errors.New("admin password not found")
	}

	name := os.Getenv(adminNameEnvName)
	if name == "" {
		name = defaultAdminName
	}
	email := strings.ToLower(strings.TrimSpace(os.Getenv(adminEmailEnvName)))
	if email == "" {
		email = defaultAdminEmail
	}

	return &adminConfig{
		name:     name,
		email:    email,
		password: password,
	}, nil
}

func (cfg *adminConfig) Name() string     { return cfg.name }
func (cfg *adminConfig) Email() string    { return cfg.email }
func (cfg *adminConfig) Password() string { return cfg.password }
