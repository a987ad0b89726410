package wheel

import (
	"testing"
	"time"
	"vault_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestEvaluate_FreshWindow(t *testing.T) {
	res := Evaluate(model.SpinState{}, 1, now)

	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.State.SpinCount)
	assert.Equal(t, now, res.State.WindowStart)
	assert.Zero(t, res.RetryAfter)
}

func TestEvaluate_ExpiredWindowResets(t *testing.T) {
	state := model.SpinState{
		SpinCount:   1,
		WindowStart: now.Add(-25 * time.Hour),
		LastSpinAt:  now.Add(-25 * time.Hour),
	}

	res := Evaluate(state, 1, now)

	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.State.SpinCount)
	assert.Equal(t, now, res.State.WindowStart)
	// Предыдущее время спина не трогаем
	assert.Equal(t, state.LastSpinAt, res.State.LastSpinAt)
}

func TestEvaluate_LimitReached(t *testing.T) {
	state := model.SpinState{
		SpinCount:   1,
		WindowStart: now.Add(-time.Hour),
	}

	res := Evaluate(state, 1, now)

	assert.False(t, res.Allowed)
	assert.InDelta(t, float64(23*time.Hour), float64(res.RetryAfter), float64(time.Millisecond))
	assert.Equal(t, state, res.State)
}

func TestEvaluate_WindowBoundaryIsStrict(t *testing.T) {
	state := model.SpinState{
		SpinCount:   2,
		WindowStart: now.Add(-CooldownDuration),
	}

	res := Evaluate(state, 2, now)
	assert.False(t, res.Allowed, "exactly 24h old window is still active")
	assert.Zero(t, res.RetryAfter)

	res = Evaluate(state, 2, now.Add(time.Millisecond))
	assert.True(t, res.Allowed)
}

func TestEvaluate_BelowLimitKeepsWindow(t *testing.T) {
	start := now.Add(-3 * time.Hour)
	res := Evaluate(model.SpinState{SpinCount: 2, WindowStart: start}, 3, now)

	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.State.SpinCount)
	assert.Equal(t, start, res.State.WindowStart)
}

func TestEvaluate_NonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		res := Evaluate(model.SpinState{}, limit, now)
		assert.False(t, res.Allowed, "limit %d", limit)
	}
}

func TestSpinsLeft(t *testing.T) {
	active := model.SpinState{SpinCount: 2, WindowStart: now.Add(-time.Hour)}
	stale := model.SpinState{SpinCount: 3, WindowStart: now.Add(-30 * time.Hour)}

	assert.Equal(t, 1, SpinsLeft(active, 3, now))
	assert.Equal(t, 0, SpinsLeft(active, 1, now))
	assert.Equal(t, 3, SpinsLeft(stale, 3, now))
	assert.Equal(t, 5, SpinsLeft(model.SpinState{}, 5, now))
}

func TestCountdown(t *testing.T) {
	tests := []struct {
		name  string
		state model.SpinState
		limit int
		want  time.Duration
		shown bool
	}{
		{
			name:  "never spun",
			state: model.SpinState{},
			limit: 1,
		},
		{
			name:  "spins remain in open window",
			state: model.SpinState{SpinCount: 1, WindowStart: now.Add(-time.Hour)},
			limit: 2,
		},
		{
			name:  "limit reached",
			state: model.SpinState{SpinCount: 1, WindowStart: now.Add(-90 * time.Minute)},
			limit: 1,
			want:  22*time.Hour + 30*time.Minute,
			shown: true,
		},
		{
			name:  "window elapsed",
			state: model.SpinState{SpinCount: 1, WindowStart: now.Add(-25 * time.Hour)},
			limit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shown := Countdown(tt.state, tt.limit, now)
			assert.Equal(t, tt.shown, shown)
			assert.Equal(t, tt.want, got)
		})
	}
}
