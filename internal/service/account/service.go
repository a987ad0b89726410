package account

import (
	"time"
	"vault_backend/internal/mailer"
	"vault_backend/internal/metrics"
	"vault_backend/internal/repository"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"

	"go.uber.org/zap"
)

// emailChangeOTPTTL - сколько живет код смены почты
const emailChangeOTPTTL = 10 * time.Minute

type serv struct {
	txManager service.TxManager
	userRepo  repository.UserRepository
	otpRepo   repository.OTPRepository
	mailer    mailer.Mailer

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

func NewAccountService(
	txManager service.TxManager,
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	m mailer.Mailer,
	opts ...Option,
) service.AccountService {
	s := &serv{
		txManager: txManager,
		userRepo:  userRepo,
		otpRepo:   otpRepo,
		mailer:    m,
		clock:     time.Now,
		log:       logger.Named("account"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
