package env

import (
	"fmt"
	"net"
	"os"
	"time"
	"vault_backend/internal/config"
)

const (
	httpHostEnvName    = "HTTP_HOST"
	httpPortEnvName    = "HTTP_PORT"
	httpTimeoutEnvName = "HTTP_REQUEST_TIMEOUT"

	defaultHTTPPort    = "3001"
	defaultHTTPTimeout = 15 * time.Second
)

type httpConfig struct {
	host    string
	port    string
	timeout time.Duration
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		port = defaultHTTPPort
	}

	timeout := defaultHTTPTimeout
	if raw := os.Getenv(httpTimeoutEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid http request timeout: %w", err)
		}
		timeout = parsed
	}

	return &httpConfig{
		host:    os.Getenv(httpHostEnvName),
		port:    port,
		timeout: timeout,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) RequestTimeout() time.Duration {
	return cfg.timeout
}
