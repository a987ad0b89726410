package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"vault_backend/internal/config"
)

const (
	smtpHostEnvName = "SMTP_HOST"
	smtpPortEnvName = "SMTP_PORT"
	smtpUserEnvName = "SMTP_USER"
	smtpPassEnvName = "SMTP_PASS"
	smtpFromEnvName = "SMTP_FROM"

	defaultSMTPHost = "smtp.hostinger.com"
	defaultSMTPPort = 587
)

type smtpConfig struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSMTPConfig() (config.SMTPConfig, error) {
	host := cleanVar(os.Getenv(smtpHostEnvName))
	if host == "" {
		host = defaultSMTPHost
	}

	port := defaultSMTPPort
	if raw := cleanVar(os.Getenv(smtpPortEnvName)); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid smtp port: %w", err)
		}
		port = parsed
	}

	user := cleanVar(os.Getenv(smtpUserEnvName))
	from := cleanVar(os.Getenv(smtpFromEnvName))
	if from == "" {
		from = user
	}

	return &smtpConfig{
		host:     host,
		port:     port,
		user:     user,
		password: cleanVar(os.Getenv(smtpPassEnvName)),
		from:     from,
	}, nil
}

// cleanVar убирает пробелы и обрамляющие кавычки, которые часто остаются в .env
func cleanVar(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, `"`)
	v = strings.TrimSuffix(v, `"`)
	v = strings.TrimPrefix(v, `'`)
	v = strings.TrimSuffix(v, `'`)
	return v
}

func (cfg *smtpConfig) Host() string     { return cfg.host }
func (cfg *smtpConfig) Port() int        { return cfg.port }
func (cfg *smtpConfig) User() string     { return cfg.user }
func (cfg *smtpConfig) Password() string { return cfg.password }
func (cfg *smtpConfig) From() string     { return cfg.from }

func (cfg *smtpConfig) Enabled() bool {
	return cfg.user != "" && cfg.password != ""
}
