package memory

import (
	"context"
	"sync"
	"vault_backend/internal/model"
)

type WheelRepo struct {
	mtx sync.RWMutex
	cfg *model.WheelConfig
}

func NewWheelRepository() *WheelRepo {
	return &WheelRepo{}
}

func (r *WheelRepo) GetWheelConfig(_ context.Context) (*model.WheelConfig, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if r.cfg == nil {
		return nil, model.ErrConfigUnavailable
	}
	return cloneConfig(r.cfg), nil
}

func (r *WheelRepo) SaveWheelConfig(_ context.Context, cfg *model.WheelConfig) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.cfg = cloneConfig(cfg)
	return nil
}

// Секторы копируются, чтобы вызывающий не мог поменять сохраненный конфиг
func cloneConfig(cfg *model.WheelConfig) *model.WheelConfig {
	c := *cfg
	c.Outcomes = append([]model.Outcome(nil), cfg.Outcomes...)
	return &c
}

type AnnouncementRepo struct {
	mtx sync.RWMutex
	a   *model.Announcement
}

func NewAnnouncementRepository() *AnnouncementRepo {
	return &AnnouncementRepo{}
}

func (r *AnnouncementRepo) GetAnnouncement(_ context.Context) (*model.Announcement, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if r.a == nil {
		return nil, model.ErrAnnouncementNotFound
	}
	a := *r.a
	return &a, nil
}

func (r *AnnouncementRepo) SaveAnnouncement(_ context.Context, a *model.Announcement) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	saved := *a
	r.a = &saved
	return nil
}
