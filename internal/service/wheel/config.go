package wheel

import (
	"context"
	"fmt"
	"math"
	"vault_backend/internal/model"

	"go.uber.org/zap"
)

func (s *serv) GetConfig(ctx context.Context) (*model.WheelConfig, error) {
	return s.wheelRepo.GetWheelConfig(ctx)
}

// UpdateConfig - правка админа. Незаданные поля патча берутся из текущего конфига
func (s *serv) UpdateConfig(ctx context.Context, patch model.WheelConfigPatch) (*model.WheelConfig, error) {
	var updated *model.WheelConfig

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.wheelRepo.GetWheelConfig(ctx)
		if err != nil {
			return err
		}

		next := *current
		if patch.Outcomes != nil {
			next.Outcomes = patch.Outcomes
		}
		if patch.DailyLimit != nil {
			next.DailyLimit = *patch.DailyLimit
		}
		next.UpdatedAt = s.clock()

		if err := ValidateConfig(&next); err != nil {
			return err
		}
		if err := s.wheelRepo.SaveWheelConfig(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("wheel config updated",
		zap.Int("outcomes", len(updated.Outcomes)),
		zap.Int("daily_limit", updated.DailyLimit),
	)
	return updated, nil
}

// ValidateConfig проверяет, что по конфигу можно крутить колесо
func ValidateConfig(cfg *model.WheelConfig) error {
	if len(cfg.Outcomes) == 0 {
		return fmt.Errorf("%w: at least one outcome is required", model.ErrInvalidWheelConfig)
	}
	if cfg.DailyLimit <= 0 {
		return fmt.Errorf("%w: daily limit must be positive", model.ErrInvalidWheelConfig)
	}

	seen := make(map[int]struct{}, len(cfg.Outcomes))
	total := 0.0
	for _, o := range cfg.Outcomes {
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("%w: duplicate outcome id %d", model.ErrInvalidWheelConfig, o.ID)
		}
		seen[o.ID] = struct{}{}

		if math.IsNaN(o.Weight) || math.IsInf(o.Weight, 0) || o.Weight < 0 {
			return fmt.Errorf("%w: outcome %d: %w", model.ErrInvalidWheelConfig, o.ID, model.ErrInvalidWeight)
		}
		if !o.Kind.Valid() {
			return fmt.Errorf("%w: outcome %d: unknown type %q", model.ErrInvalidWheelConfig, o.ID, o.Kind)
		}
		if o.Amount.IsNegative() {
			return fmt.Errorf("%w: outcome %d: negative amount", model.ErrInvalidWheelConfig, o.ID)
		}
		total += o.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: %w", model.ErrInvalidWheelConfig, model.ErrNoDrawableOutcome)
	}
	return nil
}
