package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"vault_backend/internal/config"
	"vault_backend/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type wheelSeedFile struct {
	SignupBonus float64 `yaml:"signup_bonus"`
	Wheel       struct {
		DailyLimit int `yaml:"daily_limit"`
		Outcomes   []struct {
			ID      int     `yaml:"id"`
			Label   string  `yaml:"label"`
			Type    string  `yaml:"type"`
			Value   float64 `yaml:"value"`
			Weight  float64 `yaml:"weight"`
			Premium bool    `yaml:"premium"`
		} `yaml:"outcomes"`
	} `yaml:"wheel"`
	Announcement struct {
		Enabled  *bool  `yaml:"enabled"`
		ImageURL string `yaml:"image_url"`
	} `yaml:"announcement"`
}

type wheelSeedConfig struct {
	dailyLimit          int
	outcomes            []model.Outcome
	signupBonus         decimal.Decimal
	announcementEnabled bool
	announcementImage   string
}

const (
	defaultSignupBonus       = 500
	defaultAnnouncementImage = "https://images.unsplash.com/photo-1518623489648-a173ef7824f3?auto=format&fit=crop&q=80&w=1200"
)

// DefaultOutcomes - стартовый набор секторов, если в config.yaml ничего не задано
func DefaultOutcomes() []model.Outcome {
	return []model.Outcome{
		{ID: 0, Label: "₹10 Bonus", Kind: model.KindCreditBalance, Amount: decimal.NewFromInt(10), Weight: 40},
		{ID: 1, Label: "Try Again", Kind: model.KindNoEffect, Amount: decimal.Zero, Weight: 20},
		{ID: 2, Label: "₹50 Bonus", Kind: model.KindCreditBalance, Amount: decimal.NewFromInt(50), Weight: 15},
		{ID: 3, Label: "Voucher Pack", Kind: model.KindNoEffect, Amount: decimal.Zero, Weight: 10},
		{ID: 4, Label: "Better Luck", Kind: model.KindNoEffect, Amount: decimal.Zero, Weight: 10},
		{ID: 5, Label: "₹500 MEGA", Kind: model.KindCreditBalance, Amount: decimal.NewFromInt(500), Weight: 1, Premium: true},
		{ID: 6, Label: "Jackpot Entry", Kind: model.KindNoEffect, Amount: decimal.Zero, Weight: 2},
		{ID: 7, Label: "₹100 Bonus", Kind: model.KindCreditBalance, Amount: decimal.NewFromInt(100), Weight: 2},
	}
}

// NewWheelSeedConfigFromYAML читает начальные настройки колеса.
// Отсутствующий файл не ошибка - берутся значения по умолчанию.
func NewWheelSeedConfigFromYAML(path string) (config.WheelSeedConfig, error) {
	cfg := &wheelSeedConfig{
		dailyLimit:          1,
		outcomes:            DefaultOutcomes(),
		signupBonus:         decimal.NewFromInt(defaultSignupBonus),
		announcementEnabled: true,
		announcementImage:   defaultAnnouncementImage,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read wheel config: %w", err)
	}

	var file wheelSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}

	if file.SignupBonus < 0 {
		return nil, fmt.Errorf("signup_bonus must be non-negative")
	}
	if file.SignupBonus > 0 {
		cfg.signupBonus = decimal.NewFromFloat(file.SignupBonus)
	}
	if file.Wheel.DailyLimit != 0 {
		if file.Wheel.DailyLimit < 0 {
			return nil, fmt.Errorf("wheel.daily_limit must be positive")
		}
		cfg.dailyLimit = file.Wheel.DailyLimit
	}
	if len(file.Wheel.Outcomes) > 0 {
		outcomes := make([]model.Outcome, 0, len(file.Wheel.Outcomes))
		for _, o := range file.Wheel.Outcomes {
			kind := model.OutcomeKind(o.Type)
			if !kind.Valid() {
				return nil, fmt.Errorf("outcome %d: unknown type %q", o.ID, o.Type)
			}
			outcomes = append(outcomes, model.Outcome{
				ID:      o.ID,
				Label:   o.Label,
				Kind:    kind,
				Amount:  decimal.NewFromFloat(o.Value),
				Weight:  o.Weight,
				Premium: o.Premium,
			})
		}
		cfg.outcomes = outcomes
	}
	if file.Announcement.Enabled != nil {
		cfg.announcementEnabled = *file.Announcement.Enabled
	}
	if file.Announcement.ImageURL != "" {
		cfg.announcementImage = file.Announcement.ImageURL
	}

	return cfg, nil
}

func (c *wheelSeedConfig) DailyLimit() int { return c.dailyLimit }

func (c *wheelSeedConfig) Outcomes() []model.Outcome {
	out := make([]model.Outcome, len(c.outcomes))
	copy(out, c.outcomes)
	return out
}

func (c *wheelSeedConfig) SignupBonus() decimal.Decimal { return c.signupBonus }
func (c *wheelSeedConfig) AnnouncementEnabled() bool    { return c.announcementEnabled }
func (c *wheelSeedConfig) AnnouncementImageURL() string { return c.announcementImage }
