package session

import (
	"errors"
	"testing"
	"time"
	"vault_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func TestCheck_AdminBoundary(t *testing.T) {
	expired := Check(model.SessionRecord{IsAdmin: true, LoginAt: now.Add(-20*time.Minute - time.Second)}, now)
	assert.True(t, expired.Expired)
	assert.Equal(t, KindAdmin, expired.Kind)

	alive := Check(model.SessionRecord{IsAdmin: true, LoginAt: now.Add(-19*time.Minute - 59*time.Second)}, now)
	assert.False(t, alive.Expired)
}

func TestCheck_ExactLimitIsAlive(t *testing.T) {
	v := Check(model.SessionRecord{IsAdmin: true, LoginAt: now.Add(-AdminLimit)}, now)
	assert.False(t, v.Expired)
}

func TestCheck_PlayerLimit(t *testing.T) {
	v := Check(model.SessionRecord{LoginAt: now.Add(-23 * time.Hour)}, now)
	assert.False(t, v.Expired)
	assert.Equal(t, KindPlayer, v.Kind)
	assert.Equal(t, PlayerLimit, v.Limit)

	v = Check(model.SessionRecord{LoginAt: now.Add(-25 * time.Hour)}, now)
	assert.True(t, v.Expired)
}

func TestCheck_MissingLoginTime(t *testing.T) {
	v := Check(model.SessionRecord{}, now)
	assert.True(t, v.Expired)
}

func TestVerdictErr(t *testing.T) {
	assert.NoError(t, Verdict{}.Err())

	err := Verdict{Expired: true, Kind: KindAdmin}.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSessionExpired))
	assert.Equal(t, "Your Admin session has expired for security.", err.Error())
}

func TestPreserve_KeepsOriginalLoginTime(t *testing.T) {
	loginAt := now.Add(-15 * time.Minute)
	existing := model.SessionRecord{UserID: 7, IsAdmin: true, LoginAt: loginAt}
	refreshed := model.SessionRecord{UserID: 7, IsAdmin: true, LoginAt: now}

	got := Preserve(existing, refreshed, now)
	assert.Equal(t, loginAt, got.LoginAt)

	// Повторные refresh не продлевают админскую сессию
	later := now.Add(6 * time.Minute)
	got = Preserve(got, model.SessionRecord{UserID: 7, IsAdmin: true, LoginAt: later}, later)
	assert.True(t, Check(got, later).Expired)
}

func TestPreserve_FallsBackToNow(t *testing.T) {
	got := Preserve(model.SessionRecord{}, model.SessionRecord{UserID: 3}, now)
	assert.Equal(t, now, got.LoginAt)
	assert.Equal(t, 3, got.UserID)
}
