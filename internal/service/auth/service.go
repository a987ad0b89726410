package auth

import (
	"time"
	"vault_backend/internal/config"
	"vault_backend/internal/mailer"
	"vault_backend/internal/metrics"
	"vault_backend/internal/repository"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// registrationOTPTTL - сколько живет код регистрации
const registrationOTPTTL = 5 * time.Minute

type serv struct {
	txManager   service.TxManager
	userRepo    repository.UserRepository
	authRepo    repository.AuthRepository
	otpRepo     repository.OTPRepository
	mailer      mailer.Mailer
	jwtConfig   config.JWTConfig
	signupBonus decimal.Decimal

	clock   func() time.Time
	metrics *metrics.Metrics
	log     *zap.Logger
}

type Option func(*serv)

func WithClock(clock func() time.Time) Option {
	return func(s *serv) {
		s.clock = clock
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *serv) {
		s.metrics = m
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *serv) {
		s.log = log
	}
}

func NewAuthService(
	txManager service.TxManager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	otpRepo repository.OTPRepository,
	m mailer.Mailer,
	jwtConfig config.JWTConfig,
	signupBonus decimal.Decimal,
	opts ...Option,
) service.AuthService {
	s := &serv{
		txManager:   txManager,
		userRepo:    userRepo,
		authRepo:    authRepo,
		otpRepo:     otpRepo,
		mailer:      m,
		jwtConfig:   jwtConfig,
		signupBonus: signupBonus,
		clock:       time.Now,
		log:         logger.Named("auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
