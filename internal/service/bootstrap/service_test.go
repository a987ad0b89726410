package bootstrap

import (
	"context"
	"testing"
	"vault_backend/internal/config/env"
	"vault_backend/internal/repository/memory"
	"vault_backend/pkg/pass"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminConfig struct{}

func (adminConfig) Name() string     { return "Vault Administrator" }
func (adminConfig) Email() string    { return "Admin@Boss.com" }
func (adminConfig) Password() string { return "adminpassword" }

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	wheels := memory.NewWheelRepository()
	announcements := memory.NewAnnouncementRepository()

	seed, err := env.NewWheelSeedConfigFromYAML("testdata/missing.yaml")
	require.NoError(t, err)

	svc := NewBootstrapService(users, wheels, announcements, seed, adminConfig{})
	require.NoError(t, svc.Seed(ctx))

	cfg, err := wheels.GetWheelConfig(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.Outcomes, 8)
	assert.Equal(t, 1, cfg.DailyLimit)

	admin, err := users.GetUserByEmail(ctx, "admin@boss.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, pass.VerifyPassword(admin.Password, "adminpassword"))

	// Правка админа не затирается повторным запуском
	cfg.DailyLimit = 5
	require.NoError(t, wheels.SaveWheelConfig(ctx, cfg))
	require.NoError(t, users.UpdateBalance(ctx, admin.ID, decimal.NewFromInt(7)))

	require.NoError(t, svc.Seed(ctx))

	cfg, err = wheels.GetWheelConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.DailyLimit)

	players, err := users.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)

	a, err := announcements.GetAnnouncement(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ImageURL)
}
