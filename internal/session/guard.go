// Package session следит за возрастом сессий: админская живет 20 минут, игровая 24 часа.
package session

import (
	"time"
	"vault_backend/internal/model"
)

const (
	AdminLimit  = 20 * time.Minute
	PlayerLimit = 24 * time.Hour

	// CheckInterval - период фоновой проверки
	CheckInterval = 30 * time.Second

	KindAdmin  = "Admin"
	KindPlayer = "Player"
)

type Verdict struct {
	Expired bool
	Kind    string
	Age     time.Duration
	Limit   time.Duration
}

func Limit(isAdmin bool) time.Duration {
	if isAdmin {
		return AdminLimit
	}
	return PlayerLimit
}

func Kind(isAdmin bool) string {
	if isAdmin {
		return KindAdmin
	}
	return KindPlayer
}

// Check проверяет возраст сессии. Сессия без времени логина считается истекшей.
func Check(rec model.SessionRecord, now time.Time) Verdict {
	limit := Limit(rec.IsAdmin)
	v := Verdict{
		Kind:  Kind(rec.IsAdmin),
		Limit: limit,
	}
	if rec.LoginAt.IsZero() {
		v.Expired = true
		v.Age = time.Duration(now.UnixMilli()) * time.Millisecond
		return v
	}
	v.Age = now.Sub(rec.LoginAt)
	v.Expired = v.Age > limit
	return v
}

// Err возвращает ошибку истечения для вердикта или nil
func (v Verdict) Err() error {
	if !v.Expired {
		return nil
	}
	return &model.SessionExpiredError{Kind: v.Kind}
}

// Preserve собирает запись после обновления профиля.
// Время логина берется из существующей записи, иначе частые refresh продлевали бы сессию бесконечно.
func Preserve(existing, refreshed model.SessionRecord, now time.Time) model.SessionRecord {
	out := refreshed
	switch {
	case !existing.LoginAt.IsZero():
		out.LoginAt = existing.LoginAt
	case refreshed.LoginAt.IsZero():
		out.LoginAt = now
	}
	return out
}
