package user_repo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
	"vault_backend/internal/model"
	"vault_backend/internal/repository"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatabaseEnv = "VAULT_TEST_DATABASE_URL"

func setupRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s is not set", testDatabaseEnv)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, repository.EnsureSchema(ctx, pool))
	return NewUserRepository(pool, trmpgx.DefaultCtxGetter)
}

func uniqueEmail(t *testing.T) string {
	return fmt.Sprintf("%s-%d@test.local", t.Name(), time.Now().UnixNano())
}

func TestUserRepository_UpdateSpinStateCompareAndSet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, &model.User{
		Name:     "cas",
		Email:    uniqueEmail(t),
		Password: "hash",
		Balance:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	u, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.Spin.WindowStart.IsZero())

	now := time.Now().UTC().Truncate(time.Millisecond)
	state := model.SpinState{SpinCount: 1, WindowStart: now, LastSpinAt: now}

	require.NoError(t, repo.UpdateSpinState(ctx, id, u.Version, decimal.NewFromInt(150), state))

	// Вторая запись с той же версией должна проиграть
	err = repo.UpdateSpinState(ctx, id, u.Version, decimal.NewFromInt(200), state)
	assert.ErrorIs(t, err, model.ErrPersistenceConflict)

	got, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 1, got.Spin.SpinCount)
	assert.True(t, got.Spin.WindowStart.Equal(now))
	assert.Equal(t, u.Version+1, got.Version)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	email := uniqueEmail(t)
	_, err := repo.CreateUser(ctx, &model.User{Name: "a", Email: email, Password: "x"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, &model.User{Name: "b", Email: email, Password: "y"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetUserByID(context.Background(), -1)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
