package wheel

import (
	"time"
	"vault_backend/internal/metrics"
	"vault_backend/internal/repository"
	"vault_backend/internal/service"
	"vault_backend/internal/wheel"
	"vault_backend/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	// defaultMaxRetries - сколько раз повторяем спин после проигранного условного обновления
	defaultMaxRetries = 3
	// defaultHistoryLimit - размер истории спинов по умолчанию
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type serv struct {
	txManager   service.TxManager
	userRepo    repository.UserRepository
	wheelRepo   repository.WheelRepository
	spinLogRepo repository.SpinLogRepository

	clock      func() time.Time
	source     wheel.Source
	metrics    *metrics.Metrics
	log        *zap.Logger
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

type Option func(*serv)

func WithClock(clock func() time.Time) Option {
	return func(s *serv) {
		s.clock = clock
	}
}

func WithSource(src wheel.Source) Option {
	return func(s *serv) {
		s.source = src
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

// WithRetry задает число повторов и фабрику интервалов между ними
func WithRetry(maxRetries uint64, factory func() backoff.BackOff) Option {
	return func(s *serv) {
		s.maxRetries = maxRetries
		if factory != nil {
			s.newBackOff = factory
		}
	}
}

func NewWheelService(
	txManager service.TxManager,
	userRepo repository.UserRepository,
	wheelRepo repository.WheelRepository,
	spinLogRepo repository.SpinLogRepository,
	opts ...Option,
) service.WheelService {
	s := &serv{
		txManager:   txManager,
		userRepo:    userRepo,
		wheelRepo:   wheelRepo,
		spinLogRepo: spinLogRepo,
		clock:       time.Now,
		source:      wheel.DefaultSource(),
		log:         logger.Named("wheel"),
		maxRetries:  defaultMaxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 15 * time.Millisecond
			b.MaxInterval = 200 * time.Millisecond
			return b
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
