package announcement

import (
	"context"
	"fmt"
	"strings"
	"time"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"

	"go.uber.org/zap"
)

type serv struct {
	repo  repository.AnnouncementRepository
	clock func() time.Time
	log   *zap.Logger
}

func NewAnnouncementService(repo repository.AnnouncementRepository, clock func() time.Time) service.AnnouncementService {
	if clock == nil {
		clock = time.Now
	}
	return &serv{
		repo:  repo,
		clock: clock,
		log:   logger.Named("announcement"),
	}
}

func (s *serv) Get(ctx context.Context) (*model.Announcement, error) {
	return s.repo.GetAnnouncement(ctx)
}

// Update - баннер задает админ. Картинка может быть data URL, поэтому в лог пишется только размер
func (s *serv) Update(ctx context.Context, a model.Announcement) (*model.Announcement, error) {
	sizeKB := fmt.Sprintf("%.2f", float64(len(a.ImageURL))/1024)
	s.log.Info("announcement update requested", zap.String("size_kb", sizeKB))

	a.ImageURL = strings.TrimSpace(a.ImageURL)
	if a.ImageURL == "" {
		s.log.Warn("announcement rejected: image is empty")
		return nil, model.ErrImageRequired
	}
	a.UpdatedAt = s.clock()

	if err := s.repo.SaveAnnouncement(ctx, &a); err != nil {
		return nil, fmt.Errorf("save announcement: %w", err)
	}

	s.log.Info("announcement applied", zap.Bool("enabled", a.Enabled))
	return &a, nil
}
