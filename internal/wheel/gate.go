// Package wheel содержит чистую логику колеса: окно дневного лимита и взвешенный выбор сектора.
// Функции не держат состояния и не читают часы сами, время передается вызывающим.
package wheel

import (
	"time"
	"vault_backend/internal/model"
)

// CooldownDuration - длина окна, в котором действует дневной лимит спинов
const CooldownDuration = 24 * time.Hour

// GateResult - результат проверки окна
type GateResult struct {
	Allowed bool
	// State - состояние после виртуального сброса окна. Сохраняется только если спин состоялся
	State      model.SpinState
	RetryAfter time.Duration
}

// Evaluate решает, можно ли крутить колесо прямо сейчас.
// Если окно не открывалось или истекло, счетчик сбрасывается до проверки лимита.
func Evaluate(state model.SpinState, dailyLimit int, now time.Time) GateResult {
	effective := state
	if windowExpired(state.WindowStart, now) {
		effective.SpinCount = 0
		effective.WindowStart = now
	}

	// Лимит <= 0 означает, что колесо выключено
	if dailyLimit <= 0 || effective.SpinCount >= dailyLimit {
		return GateResult{
			Allowed:    false,
			State:      effective,
			RetryAfter: retryAfter(effective.WindowStart, now),
		}
	}

	return GateResult{
		Allowed: true,
		State:   effective,
	}
}

// SpinsLeft - сколько спинов осталось в текущем окне с учетом его истечения
func SpinsLeft(state model.SpinState, dailyLimit int, now time.Time) int {
	count := state.SpinCount
	if windowExpired(state.WindowStart, now) {
		count = 0
	}
	left := dailyLimit - count
	if left < 0 {
		return 0
	}
	return left
}

// Countdown - обратный отсчет для отображения игроку.
// Пока спины в окне остаются, отсчет не показывается, даже если окно уже открыто.
func Countdown(state model.SpinState, dailyLimit int, now time.Time) (time.Duration, bool) {
	if state.WindowStart.IsZero() {
		return 0, false
	}
	if dailyLimit-state.SpinCount > 0 {
		return 0, false
	}
	left := CooldownDuration - now.Sub(state.WindowStart)
	if left <= 0 {
		return 0, false
	}
	return left, true
}

func windowExpired(start, now time.Time) bool {
	return start.IsZero() || now.Sub(start) > CooldownDuration
}

func retryAfter(start, now time.Time) time.Duration {
	left := CooldownDuration - now.Sub(start)
	if left < 0 {
		return 0
	}
	return left
}
