package auth

import (
	"context"
	"errors"
	"time"
	"vault_backend/internal/model"
	"vault_backend/pkg/pass"
	"vault_backend/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *serv) Login(ctx context.Context, email, password string) (*model.AuthData, error) {
	// Получение пользователя из бд по почте
	user, err := s.userRepo.GetUserByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.Password, password) {
		return nil, model.ErrInvalidCredentials
	}

	data, err := s.openSession(ctx, user, s.clock())
	if err != nil {
		return nil, err
	}

	s.log.Info("login", zap.Int("user_id", user.ID), zap.Bool("admin", user.IsAdmin))
	return data, nil
}

// openSession создает сессию и пару токенов. Время логина фиксируется здесь и дальше не меняется
func (s *serv) openSession(ctx context.Context, user *model.User, now time.Time) (*model.AuthData, error) {
	sessionID := uuid.NewString()

	refresh, err := token.NewRefresh()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx, &model.Session{
		ID:           sessionID,
		UserID:       user.ID,
		RefreshToken: refresh.Hash,
		ExpiresAt:    now.Add(s.jwtConfig.RefreshTokenDuration()),
		LoginAt:      now,
		IsAdmin:      user.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		user,
		now,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		SessionID:    sessionID,
		User:         user,
	}, nil
}
