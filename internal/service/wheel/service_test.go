package wheel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"vault_backend/internal/model"
	"vault_backend/internal/repository/memory"
	"vault_backend/internal/service"
	"vault_backend/internal/wheel"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	users *memory.UserRepo
	wheel *memory.WheelRepo
	spins *memory.SpinLogRepo
	now   time.Time
	svc   service.WheelService
}

func outcomes() []model.Outcome {
	return []model.Outcome{
		{ID: 1, Label: "100 Coins", Kind: model.KindCreditBalance, Amount: decimal.NewFromInt(100), Weight: 40},
		{ID: 2, Label: "Try Again", Kind: model.KindNoEffect, Weight: 60},
	}
}

func newFixture(t *testing.T, src wheel.Source, dailyLimit int, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		users: memory.NewUserRepository(),
		wheel: memory.NewWheelRepository(),
		spins: memory.NewSpinLogRepository(),
		now:   t0,
	}
	require.NoError(t, f.wheel.SaveWheelConfig(context.Background(), &model.WheelConfig{
		Outcomes:   outcomes(),
		DailyLimit: dailyLimit,
	}))

	opts = append([]Option{
		WithClock(func() time.Time { return f.now }),
		WithSource(src),
		WithRetry(3, func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	}, opts...)
	f.svc = NewWheelService(memory.NewTxManager(), f.users, f.wheel, f.spins, opts...)
	return f
}

func (f *fixture) player(t *testing.T, balance int64) int {
	t.Helper()
	id, err := f.users.CreateUser(context.Background(), &model.User{
		Name:    "player",
		Email:   "player@vault.local",
		Balance: decimal.NewFromInt(balance),
	})
	require.NoError(t, err)
	return id
}

func fixed(v float64) wheel.Source {
	return wheel.SourceFunc(func() float64 { return v })
}

func TestSpin_CreditsBalanceAndOpensWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixed(0.1), 1)
	id := f.player(t, 500)

	res, err := f.svc.Spin(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 0, res.OutcomeIndex)
	assert.Equal(t, "100 Coins", res.Outcome.Label)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 1, res.State.SpinCount)
	assert.Equal(t, t0, res.State.WindowStart)
	assert.Equal(t, t0, res.State.LastSpinAt)

	u, err := f.users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.Balance.Equal(decimal.NewFromInt(600)))

	history, err := f.svc.History(ctx, id, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].BalanceAfter.Equal(decimal.NewFromInt(600)))
}

func TestSpin_NoEffectKeepsBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixed(0.9), 2)
	id := f.player(t, 500)

	res, err := f.svc.Spin(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 1, res.OutcomeIndex)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, res.State.SpinCount)
}

func TestSpin_LimitReachedMutatesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixed(0.1), 1)
	id := f.player(t, 500)

	_, err := f.svc.Spin(ctx, id)
	require.NoError(t, err)
	before, err := f.users.GetUserByID(ctx, id)
	require.NoError(t, err)

	f.now = t0.Add(time.Hour)
	_, err = f.svc.Spin(ctx, id)
	require.ErrorIs(t, err, model.ErrLimitReached)

	var limitErr *model.LimitReachedError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 23*time.Hour, limitErr.RetryAfter)

	after, err := f.users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSpin_WindowResetsAfterCooldown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixed(0.1), 1)
	id := f.player(t, 0)

	_, err := f.svc.Spin(ctx, id)
	require.NoError(t, err)

	f.now = t0.Add(24*time.Hour + time.Millisecond)
	res, err := f.svc.Spin(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 1, res.State.SpinCount)
	assert.Equal(t, f.now, res.State.WindowStart)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(200)))
}

func TestSpin_UserNotFound(t *testing.T) {
	f := newFixture(t, fixed(0.1), 1)

	_, err := f.svc.Spin(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestSpin_ConfigUnavailable(t *testing.T) {
	users := memory.NewUserRepository()
	id, err := users.CreateUser(context.Background(), &model.User{Email: "a@b.c"})
	require.NoError(t, err)

	svc := NewWheelService(memory.NewTxManager(), users, memory.NewWheelRepository(), memory.NewSpinLogRepository())

	_, err = svc.Spin(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrConfigUnavailable)
}

func TestSpin_ConcurrentSpinsCreditOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixed(0.1), 1)
	id := f.player(t, 500)

	const workers = 16
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		success atomic.Int32
		limited atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.Spin(ctx, id)
			switch {
			case err == nil:
				success.Add(1)
			case errors.Is(err, model.ErrLimitReached):
				limited.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, success.Load())
	assert.EqualValues(t, workers-1, limited.Load())

	u, err := f.users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.Balance.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 1, u.Spin.SpinCount)

	history, err := f.spins.ListSpins(ctx, id, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

// alwaysConflict проигрывает каждое условное обновление
type alwaysConflict struct {
	*memory.UserRepo
	calls atomic.Int32
}

func (r *alwaysConflict) UpdateSpinState(context.Context, int, int64, decimal.Decimal, model.SpinState) error {
	r.calls.Add(1)
	return model.ErrPersistenceConflict
}

func TestSpin_ContentionAfterRetries(t *testing.T) {
	ctx := context.Background()
	users := &alwaysConflict{UserRepo: memory.NewUserRepository()}
	id, err := users.CreateUser(ctx, &model.User{Email: "a@b.c"})
	require.NoError(t, err)

	wheelRepo := memory.NewWheelRepository()
	require.NoError(t, wheelRepo.SaveWheelConfig(ctx, &model.WheelConfig{Outcomes: outcomes(), DailyLimit: 1}))

	svc := NewWheelService(memory.NewTxManager(), users, wheelRepo, memory.NewSpinLogRepository(),
		WithSource(fixed(0.1)),
		WithRetry(2, func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	)

	_, err = svc.Spin(ctx, id)
	assert.ErrorIs(t, err, model.ErrSpinContention)
	assert.EqualValues(t, 3, users.calls.Load())
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixed(0.1), 2)
	id := f.player(t, 0)

	st, err := f.svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, st.SpinsLeft)
	assert.False(t, st.HasCooldown)

	_, err = f.svc.Spin(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.Spin(ctx, id)
	require.NoError(t, err)

	f.now = t0.Add(4 * time.Hour)
	st, err = f.svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, st.SpinsLeft)
	assert.True(t, st.HasCooldown)
	assert.Equal(t, 20*time.Hour, st.Countdown)
}

func TestUpdateConfig_Patch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixed(0.1), 1)

	limit := 3
	cfg, err := f.svc.UpdateConfig(ctx, model.WheelConfigPatch{DailyLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.DailyLimit)
	assert.Len(t, cfg.Outcomes, 2)

	stored, err := f.svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.DailyLimit)
	assert.Equal(t, t0, stored.UpdatedAt)
}

func TestUpdateConfig_RejectsInvalid(t *testing.T) {
	zero := 0
	tests := []struct {
		name  string
		patch model.WheelConfigPatch
	}{
		{"zero limit", model.WheelConfigPatch{DailyLimit: &zero}},
		{"empty outcomes", model.WheelConfigPatch{Outcomes: []model.Outcome{}}},
		{"all zero weights", model.WheelConfigPatch{Outcomes: []model.Outcome{
			{ID: 1, Kind: model.KindNoEffect, Weight: 0},
		}}},
		{"negative weight", model.WheelConfigPatch{Outcomes: []model.Outcome{
			{ID: 1, Kind: model.KindNoEffect, Weight: -1},
		}}},
		{"duplicate ids", model.WheelConfigPatch{Outcomes: []model.Outcome{
			{ID: 1, Kind: model.KindNoEffect, Weight: 1},
			{ID: 1, Kind: model.KindNoEffect, Weight: 1},
		}}},
		{"unknown kind", model.WheelConfigPatch{Outcomes: []model.Outcome{
			{ID: 1, Kind: "jackpot", Weight: 1},
		}}},
		{"negative amount", model.WheelConfigPatch{Outcomes: []model.Outcome{
			{ID: 1, Kind: model.KindCreditBalance, Amount: decimal.NewFromInt(-5), Weight: 1},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, fixed(0.1), 1)

			_, err := f.svc.UpdateConfig(ctx, tt.patch)
			assert.ErrorIs(t, err, model.ErrInvalidWheelConfig)

			stored, err := f.svc.GetConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, stored.DailyLimit)
			assert.Len(t, stored.Outcomes, 2)
		})
	}
}
