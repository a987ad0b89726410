package repository

import (
	"context"
	"time"
	"vault_backend/internal/model"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListPlayers(ctx context.Context) ([]model.User, error)

	UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error
	UpdateEmail(ctx context.Context, id int, email string) error
	// UpdateSpinState - условное обновление: проходит только если версия записи равна expectedVersion.
	// Иначе возвращает model.ErrPersistenceConflict
	UpdateSpinState(ctx context.Context, id int, expectedVersion int64, balance decimal.Decimal, state model.SpinState) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
	ListSessions(ctx context.Context) ([]model.Session, error)
}

type WheelRepository interface {
	// GetWheelConfig возвращает model.ErrConfigUnavailable, если конфиг еще не создан
	GetWheelConfig(ctx context.Context) (*model.WheelConfig, error)
	SaveWheelConfig(ctx context.Context, cfg *model.WheelConfig) error
}

type SpinLogRepository interface {
	AppendSpin(ctx context.Context, rec *model.SpinRecord) error
	ListSpins(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error)
}

type AnnouncementRepository interface {
	GetAnnouncement(ctx context.Context) (*model.Announcement, error)
	SaveAnnouncement(ctx context.Context, a *model.Announcement) error
}

// OTPRepository - ожидающие коды подтверждения. Истекшие записи удаляются при чтении
type OTPRepository interface {
	Put(ctx context.Context, key string, entry model.OTPEntry, ttl time.Duration) error
	Get(ctx context.Context, key string) (*model.OTPEntry, error)
	Delete(ctx context.Context, key string) error
}

// OTPKey - ключ кода: назначение + нормализованная почта
func OTPKey(purpose model.OTPPurpose, email string) string {
	return string(purpose) + ":" + email
}
