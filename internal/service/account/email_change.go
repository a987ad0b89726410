package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"vault_backend/internal/mailer"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/pkg/otp"

	"go.uber.org/zap"
)

// InitiateEmailChange отправляет код на новую почту. Код хранится по текущей почте игрока
func (s *serv) InitiateEmailChange(ctx context.Context, userID int, newEmail string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	newEmail = model.NormalizeEmail(newEmail)
	if newEmail == "" {
		return fmt.Errorf("%w: new email required", model.ErrInvalidInput)
	}
	if newEmail == model.NormalizeEmail(user.Email) {
		return model.ErrEmailUnchanged
	}

	_, err = s.userRepo.GetUserByEmail(ctx, newEmail)
	switch {
	case err == nil:
		return model.ErrEmailTaken
	case !errors.Is(err, model.ErrUserNotFound):
		return err
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}

	entry := model.OTPEntry{
		Code:      code,
		NewEmail:  newEmail,
		ExpiresAt: s.clock().Add(emailChangeOTPTTL),
	}
	key := repository.OTPKey(model.OTPPurposeEmailChange, model.NormalizeEmail(user.Email))
	if err := s.otpRepo.Put(ctx, key, entry, emailChangeOTPTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.mailer.Send(ctx, mailer.EmailChangeCode(newEmail, code)); err != nil {
		s.log.Error("email change code delivery failed",
			zap.String("email", newEmail),
			zap.String("fallback_otp", code),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", model.ErrMailDelivery, err)
	}

	s.metrics.OTPSent(string(model.OTPPurposeEmailChange))
	return nil
}

// VerifyEmailChange применяет новую почту, если код верный и не истек
func (s *serv) VerifyEmailChange(ctx context.Context, userID int, code string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := repository.OTPKey(model.OTPPurposeEmailChange, model.NormalizeEmail(user.Email))
	entry, err := s.otpRepo.Get(ctx, key)
	if err != nil {
		return nil, model.ErrInvalidOTP
	}
	if entry.Expired(s.clock()) || subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return nil, model.ErrInvalidOTP
	}

	var updated *model.User
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdateEmail(ctx, user.ID, entry.NewEmail); err != nil {
			return err
		}
		updated, err = s.userRepo.GetUserByID(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.otpRepo.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete used otp", zap.Error(err))
	}

	s.log.Info("email changed", zap.Int("user_id", user.ID))
	return updated, nil
}
