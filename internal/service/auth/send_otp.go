package auth

import (
	"context"
	"errors"
	"fmt"
	"vault_backend/internal/mailer"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/pkg/otp"

	"go.uber.org/zap"
)

// SendOTP - код подтверждения для регистрации на еще не занятую почту
func (s *serv) SendOTP(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email required", model.ErrInvalidInput)
	}

	// Почта не должна быть зарегистрирована
	_, err := s.userRepo.GetUserByEmail(ctx, email)
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
		ExpiresAt: s.clock().Add(registrationOTPTTL),
	}
	key := repository.OTPKey(model.OTPPurposeRegister, email)
	if err := s.otpRepo.Put(ctx, key, entry, registrationOTPTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.mailer.Send(ctx, mailer.RegistrationCode(email, code)); err != nil {
		// Код остается в хранилище, его можно выдать вручную из лога
		s.log.Error("otp delivery failed",
			zap.String("email", email),
			zap.String("fallback_otp", code),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", model.ErrMailDelivery, err)
	}

	s.metrics.OTPSent(string(model.OTPPurposeRegister))
	s.log.Info("otp sent", zap.String("email", email))
	return nil
}
