package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
	"vault_backend/internal/config"
	"vault_backend/internal/config/env"
	"vault_backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initConfig() {
	err := config.Load(".env")
	if err != nil {
		// .env необязателен, переменные могут прийти из окружения
		log.Printf("Error loading .env file: %v", err)
	}
}

func (s *App) initLogger() error {
	_, err := logger.Init(env.NewLogConfig().Level())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) init() error {
	s.initConfig()
	if err := s.initLogger(); err != nil {
		return err
	}
	decimal.MarshalJSONWithoutQuotes = true
	s.initServiceProvider()
	return nil
}

// Seed заполняет хранилище начальными данными и завершается
func (s *App) Seed(ctx context.Context) error {
	if err := s.init(); err != nil {
		return err
	}
	defer logger.Sync()
	defer s.ServiceProvider.Close()

	return s.ServiceProvider.BootstrapService(ctx).Seed(ctx)
}

// Run поднимает HTTP сервер и монитор сессий, работает до отмены ctx
func (s *App) Run(ctx context.Context) error {
	if err := s.init(); err != nil {
		return err
	}
	defer logger.Sync()
	defer s.ServiceProvider.Close()

	log := logger.L()
	sp := s.ServiceProvider

	err := sp.BootstrapService(ctx).Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	go sp.SessionMonitor(ctx).Run(monitorCtx)

	srv := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           sp.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr),
			zap.String("storage", sp.StorageCfg().Driver()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
