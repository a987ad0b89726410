package admin

import (
	"context"
	"fmt"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type serv struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewAdminService(userRepo repository.UserRepository) service.AdminService {
	return &serv{
		userRepo: userRepo,
		log:      logger.Named("admin"),
	}
}

// ListPlayers - все аккаунты кроме администраторов
func (s *serv) ListPlayers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListPlayers(ctx)
}

// SetBalance выставляет баланс игрока по почте
func (s *serv) SetBalance(ctx context.Context, email string, balance decimal.Decimal) (*model.User, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance must not be negative", model.ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateBalance(ctx, user.ID, balance); err != nil {
		return nil, err
	}

	s.log.Info("balance set",
		zap.Int("user_id", user.ID),
		zap.String("from", user.Balance.String()),
		zap.String("to", balance.String()),
	)
	user.Balance = balance
	return user, nil
}
