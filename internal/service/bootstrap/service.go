package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"
	"vault_backend/internal/config"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/internal/service"
	"vault_backend/internal/service/wheel"
	"vault_backend/pkg/logger"
	"vault_backend/pkg/pass"

	"go.uber.org/zap"
)

type serv struct {
	userRepo         repository.UserRepository
	wheelRepo        repository.WheelRepository
	announcementRepo repository.AnnouncementRepository
	seed             config.WheelSeedConfig
	admin            config.AdminConfig
	clock            func() time.Time
	log              *zap.Logger
}

func NewBootstrapService(
	userRepo repository.UserRepository,
	wheelRepo repository.WheelRepository,
	announcementRepo repository.AnnouncementRepository,
	seed config.WheelSeedConfig,
	admin config.AdminConfig,
) service.BootstrapService {
	return &serv{
		userRepo:         userRepo,
		wheelRepo:        wheelRepo,
		announcementRepo: announcementRepo,
		seed:             seed,
		admin:            admin,
		clock:            time.Now,
		log:              logger.Named("bootstrap"),
	}
}

// Seed заполняет пустое хранилище. Уже существующие данные не трогаются
func (s *serv) Seed(ctx context.Context) error {
	if err := s.seedWheel(ctx); err != nil {
		return fmt.Errorf("seed wheel config: %w", err)
	}
	if err := s.seedAnnouncement(ctx); err != nil {
		return fmt.Errorf("seed announcement: %w", err)
	}
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *serv) seedWheel(ctx context.Context) error {
	_, err := s.wheelRepo.GetWheelConfig(ctx)
	if !errors.Is(err, model.ErrConfigUnavailable) {
		return err
	}

	cfg := &model.WheelConfig{
		Outcomes:   s.seed.Outcomes(),
		DailyLimit: s.seed.DailyLimit(),
		UpdatedAt:  s.clock(),
	}
	if err := wheel.ValidateConfig(cfg); err != nil {
		return err
	}
	if err := s.wheelRepo.SaveWheelConfig(ctx, cfg); err != nil {
		return err
	}
	s.log.Info("wheel config seeded", zap.Int("outcomes", len(cfg.Outcomes)), zap.Int("daily_limit", cfg.DailyLimit))
	return nil
}

func (s *serv) seedAnnouncement(ctx context.Context) error {
	_, err := s.announcementRepo.GetAnnouncement(ctx)
	if !errors.Is(err, model.ErrAnnouncementNotFound) {
		return err
	}

	err = s.announcementRepo.SaveAnnouncement(ctx, &model.Announcement{
		Enabled:   s.seed.AnnouncementEnabled(),
		ImageURL:  s.seed.AnnouncementImageURL(),
		UpdatedAt: s.clock(),
	})
	if err != nil {
		return err
	}
	s.log.Info("announcement seeded")
	return nil
}

func (s *serv) seedAdmin(ctx context.Context) error {
	email := model.NormalizeEmail(s.admin.Email())
	_, err := s.userRepo.GetUserByEmail(ctx, email)
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	hash, err := pass.HashPassword(s.admin.Password())
	if err != nil {
		return err
	}
	_, err = s.userRepo.CreateUser(ctx, &model.User{
		Name:      s.admin.Name(),
		Email:     email,
		Password:  hash,
		IsAdmin:   true,
		CreatedAt: s.clock(),
	})
	if err != nil {
		return err
	}
	s.log.Info("admin account seeded", zap.String("email", email))
	return nil
}
