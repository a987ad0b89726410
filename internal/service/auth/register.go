package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/pkg/pass"
)

// Register проверяет код из письма, создает игрока с приветственным бонусом и открывает сессию
func (s *serv) Register(ctx context.Context, reg model.Registration) (*model.AuthData, error) {
	reg.Email = model.NormalizeEmail(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	if reg.Email == "" || reg.Name == "" || reg.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", model.ErrInvalidInput)
	}

	// Проверка кода
	key := repository.OTPKey(model.OTPPurposeRegister, reg.Email)
	if err := s.consumeOTP(ctx, key, reg.OTP); err != nil {
		return nil, err
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	user := &model.User{
		Name:      reg.Name,
		Email:     reg.Email,
		Password:  passwordHash,
		Balance:   s.signupBonus,
		CreatedAt: now,
	}

	var data *model.AuthData

	// Начало транзакциии
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Создать пользователя в бд
		user.ID, err = s.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}

		// 2. Сессия и токены
		data, err = s.openSession(ctx, user, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("player registered")
	return data, nil
}

// consumeOTP сверяет код и удаляет его. Удаляется только верный код
func (s *serv) consumeOTP(ctx context.Context, key, code string) error {
	entry, err := s.otpRepo.Get(ctx, key)
	if err != nil {
		return model.ErrInvalidOTP
	}
	if entry.Expired(s.clock()) || subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return model.ErrInvalidOTP
	}
	return s.otpRepo.Delete(ctx, key)
}
