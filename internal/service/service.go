package service

import (
	"context"
	"vault_backend/internal/model"

	"github.com/shopspring/decimal"
)

// TxManager - то, что сервисам нужно от менеджера транзакций.
// trm.Manager и memory.TxManager ему удовлетворяют
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type AuthService interface {
	SendOTP(ctx context.Context, email string) error
	Register(ctx context.Context, reg model.Registration) (*model.AuthData, error)
	Login(ctx context.Context, email, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (*model.AuthData, error)
	Logout(ctx context.Context, sessionID string) error
}

type AccountService interface {
	Profile(ctx context.Context, userID int) (*model.User, error)
	InitiateEmailChange(ctx context.Context, userID int, newEmail string) error
	VerifyEmailChange(ctx context.Context, userID int, code string) (*model.User, error)
}

type WheelService interface {
	Spin(ctx context.Context, userID int) (*model.SpinResult, error)
	GetConfig(ctx context.Context) (*model.WheelConfig, error)
	UpdateConfig(ctx context.Context, patch model.WheelConfigPatch) (*model.WheelConfig, error)
	Status(ctx context.Context, userID int) (*model.SpinStatus, error)
	History(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error)
}

type AnnouncementService interface {
	Get(ctx context.Context) (*model.Announcement, error)
	Update(ctx context.Context, a model.Announcement) (*model.Announcement, error)
}

type AdminService interface {
	ListPlayers(ctx context.Context) ([]model.User, error)
	SetBalance(ctx context.Context, email string, balance decimal.Decimal) (*model.User, error)
}

type BootstrapService interface {
	Seed(ctx context.Context) error
}
