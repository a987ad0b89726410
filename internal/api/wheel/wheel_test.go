package wheel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
	dto "vault_backend/internal/api/dto/wheel"
	"vault_backend/internal/middleware"
	"vault_backend/internal/model"
	"vault_backend/pkg/resp"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	spin       func(ctx context.Context, userID int) (*model.SpinResult, error)
	historyArg int
}

func (f *fakeService) Spin(ctx context.Context, userID int) (*model.SpinResult, error) {
	return f.spin(ctx, userID)
}

func (f *fakeService) GetConfig(context.Context) (*model.WheelConfig, error) {
	return &model.WheelConfig{
		DailyLimit: 1,
		Outcomes:   []model.Outcome{{ID: 1, Label: "Try Again", Kind: model.KindNoEffect, Weight: 1}},
	}, nil
}

func (f *fakeService) UpdateConfig(context.Context, model.WheelConfigPatch) (*model.WheelConfig, error) {
	return nil, nil
}

func (f *fakeService) Status(context.Context, int) (*model.SpinStatus, error) {
	return &model.SpinStatus{DailyLimit: 1, HasCooldown: true, Countdown: time.Hour}, nil
}

func (f *fakeService) History(_ context.Context, _ int, limit int) ([]model.SpinRecord, error) {
	f.historyArg = limit
	return nil, nil
}

func withPlayer(r *http.Request, id int) *http.Request {
	claims := &model.UserClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.Itoa(id)}}
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

func TestSpin_Success(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	svc := &fakeService{spin: func(_ context.Context, userID int) (*model.SpinResult, error) {
		assert.Equal(t, 42, userID)
		return &model.SpinResult{
			Outcome:      model.Outcome{ID: 7, Label: "₹100 Bonus", Kind: model.KindCreditBalance, Amount: decimal.NewFromInt(100), Weight: 2},
			OutcomeIndex: 7,
			Balance:      decimal.NewFromInt(600),
			State:        model.SpinState{SpinCount: 1, WindowStart: start, LastSpinAt: start},
		}, nil
	}}
	h := NewHandler(HandlerDeps{Serv: svc})

	w := httptest.NewRecorder()
	h.Spin(w, withPlayer(httptest.NewRequest(http.MethodPost, "/api/wheel/spin", nil), 42))

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.SpinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 7, body.OutcomeIndex)
	assert.True(t, body.NewBalance.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, int64(1_700_000_000_000), body.WindowStart)
	assert.Equal(t, "balance", body.Outcome.Type)
}

func TestSpin_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"limit", &model.LimitReachedError{RetryAfter: 2 * time.Hour}, http.StatusForbidden, "LimitReached"},
		{"not found", model.ErrUserNotFound, http.StatusNotFound, "NotFound"},
		{"config", model.ErrConfigUnavailable, http.StatusInternalServerError, "ConfigUnavailable"},
		{"contention", model.ErrSpinContention, http.StatusServiceUnavailable, "Contention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{spin: func(context.Context, int) (*model.SpinResult, error) { return nil, tt.err }}
			h := NewHandler(HandlerDeps{Serv: svc})

			w := httptest.NewRecorder()
			h.Spin(w, withPlayer(httptest.NewRequest(http.MethodPost, "/api/wheel/spin", nil), 1))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body resp.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
		})
	}
}

func TestSpin_NoClaims(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeService{}})

	w := httptest.NewRecorder()
	h.Spin(w, httptest.NewRequest(http.MethodPost, "/api/wheel/spin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatus_Countdown(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeService{}})

	w := httptest.NewRecorder()
	h.Status(w, withPlayer(httptest.NewRequest(http.MethodGet, "/api/wheel/status", nil), 1))

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.CountdownMs)
	assert.Equal(t, time.Hour.Milliseconds(), *body.CountdownMs)
}

func TestHistory_Limit(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(HandlerDeps{Serv: svc})

	w := httptest.NewRecorder()
	h.History(w, withPlayer(httptest.NewRequest(http.MethodGet, "/api/wheel/history?limit=5", nil), 1))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, svc.historyArg)

	w = httptest.NewRecorder()
	h.History(w, withPlayer(httptest.NewRequest(http.MethodGet, "/api/wheel/history?limit=abc", nil), 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
