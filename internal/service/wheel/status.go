package wheel

import (
	"context"
	"fmt"
	"vault_backend/internal/model"
	"vault_backend/internal/wheel"
)

// Status - сколько спинов осталось и сколько ждать до нового окна
func (s *serv) Status(ctx context.Context, userID int) (*model.SpinStatus, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	cfg, err := s.wheelRepo.GetWheelConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wheel config: %w", err)
	}

	now := s.clock()
	countdown, hasCooldown := wheel.Countdown(user.Spin, cfg.DailyLimit, now)

	return &model.SpinStatus{
		DailyLimit:  cfg.DailyLimit,
		SpinsLeft:   wheel.SpinsLeft(user.Spin, cfg.DailyLimit, now),
		Countdown:   countdown,
		HasCooldown: hasCooldown,
		State:       user.Spin,
		Balance:     user.Balance,
	}, nil
}

func (s *serv) History(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.spinLogRepo.ListSpins(ctx, userID, limit)
}
