package wheel

import (
	"context"
	"errors"
	"fmt"
	"vault_backend/internal/metrics"
	"vault_backend/internal/model"
	"vault_backend/internal/wheel"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Spin - один спин игрока: проверка окна, выбор сектора, начисление.
// Конкурентные спины одного игрока разрешаются условным обновлением по версии записи,
// проигравший повторяет всю последовательность заново
func (s *serv) Spin(ctx context.Context, userID int) (*model.SpinResult, error) {
	var (
		result   *model.SpinResult
		attempts int
	)

	operation := func() error {
		attempts++
		res, err := s.spinOnce(ctx, userID)
		if err == nil {
			result = res
			return nil
		}
		if errors.Is(err, model.ErrPersistenceConflict) {
			s.metrics.Conflict()
			s.log.Debug("spin conflict, retrying", zap.Int("user_id", userID), zap.Int("attempt", attempts))
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	err := backoff.Retry(operation, b)
	if err == nil {
		return result, nil
	}

	var limitErr *model.LimitReachedError
	switch {
	case errors.As(err, &limitErr):
		s.metrics.Spin(metrics.SpinLimited)
		return nil, err
	case errors.Is(err, model.ErrPersistenceConflict):
		s.metrics.Spin(metrics.SpinContention)
		s.log.Warn("spin contention, retries exhausted", zap.Int("user_id", userID), zap.Int("attempts", attempts))
		return nil, fmt.Errorf("%w: %d attempts", model.ErrSpinContention, attempts)
	default:
		s.metrics.Spin(metrics.SpinFailed)
		return nil, err
	}
}

func (s *serv) spinOnce(ctx context.Context, userID int) (*model.SpinResult, error) {
	// 1. Аккаунт игрока
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	// 2. Конфиг читается на каждый спин, правки админа видны сразу
	cfg, err := s.wheelRepo.GetWheelConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wheel config: %w", err)
	}

	// 3. Окно спинов
	now := s.clock()
	gate := wheel.Evaluate(user.Spin, cfg.DailyLimit, now)
	if !gate.Allowed {
		return nil, &model.LimitReachedError{RetryAfter: gate.RetryAfter}
	}

	// 4. Выбор сектора
	outcome, idx, err := wheel.Select(cfg.Outcomes, s.source)
	if err != nil {
		return nil, fmt.Errorf("select outcome: %w", err)
	}

	balance := user.Balance
	if outcome.Kind == model.KindCreditBalance {
		balance = balance.Add(outcome.Amount)
	}
	state := model.SpinState{
		SpinCount:   gate.State.SpinCount + 1,
		WindowStart: gate.State.WindowStart,
		LastSpinAt:  now,
	}

	// 5. Условная запись и журнал в одной транзакции
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdateSpinState(ctx, user.ID, user.Version, balance, state); err != nil {
			return err
		}
		return s.spinLogRepo.AppendSpin(ctx, &model.SpinRecord{
			UserID:       user.ID,
			OutcomeID:    outcome.ID,
			Label:        outcome.Label,
			Kind:         outcome.Kind,
			Amount:       outcome.Amount,
			BalanceAfter: balance,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}

	result := metrics.SpinEmpty
	if outcome.Kind == model.KindCreditBalance && outcome.Amount.IsPositive() {
		result = metrics.SpinWon
	}
	s.metrics.Spin(result)
	s.metrics.Outcome(outcome.Label)
	s.log.Info("spin",
		zap.Int("user_id", user.ID),
		zap.String("outcome", outcome.Label),
		zap.String("amount", outcome.Amount.String()),
		zap.String("balance", balance.String()),
		zap.Int("spin_count", state.SpinCount),
	)

	return &model.SpinResult{
		Outcome:      outcome,
		OutcomeIndex: idx,
		Balance:      balance,
		State:        state,
	}, nil
}
