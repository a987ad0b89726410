package session

import (
	"context"
	"fmt"
	"time"
	"vault_backend/internal/model"

	"go.uber.org/zap"
)

// Store - хранилище сессий, которое обходит монитор
type Store interface {
	ListSessions(ctx context.Context) ([]model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type ExpireHook func(s model.Session, v Verdict)

type Monitor struct {
	store    Store
	interval time.Duration
	clock    func() time.Time
	log      *zap.Logger
	onExpire ExpireHook
}

type MonitorOption func(*Monitor)

func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

func WithClock(clock func() time.Time) MonitorOption {
	return func(m *Monitor) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithExpireHook(hook ExpireHook) MonitorOption {
	return func(m *Monitor) {
		m.onExpire = hook
	}
}

func NewMonitor(store Store, log *zap.Logger, opts ...MonitorOption) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Monitor{
		store:    store,
		interval: CheckInterval,
		clock:    time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sweep удаляет истекшие сессии и возвращает их количество
func (m *Monitor) Sweep(ctx context.Context) (int, error) {
	sessions, err := m.store.ListSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	now := m.clock()
	expired := 0
	for _, s := range sessions {
		v := Check(s.Record(), now)
		if !v.Expired {
			continue
		}
		if err := m.store.DeleteSession(ctx, s.ID); err != nil {
			return expired, fmt.Errorf("delete session %s: %w", s.ID, err)
		}
		expired++
		m.log.Warn("session expired",
			zap.String("kind", v.Kind),
			zap.Int("user_id", s.UserID),
			zap.Duration("age", v.Age),
		)
		if m.onExpire != nil {
			m.onExpire(s, v)
		}
	}
	return expired, nil
}

// Run делает проверку сразу при старте и далее раз в interval, пока жив ctx
func (m *Monitor) Run(ctx context.Context) {
	if _, err := m.Sweep(ctx); err != nil {
		m.log.Error("session sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Sweep(ctx); err != nil {
				m.log.Error("session sweep failed", zap.Error(err))
			}
		}
	}
}
