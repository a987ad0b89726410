package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vault_backend/internal/model"
	"vault_backend/pkg/resp"
	"vault_backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func issue(t *testing.T, user *model.User, loginAt time.Time) string {
	t.Helper()
	tok, err := token.GenerateAccessToken(user, loginAt, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	id, err := UserIDFromContext(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, map[string]int{"id": id})
}

func TestAuth(t *testing.T) {
	now := time.Now()
	player := &model.User{ID: 7}
	admin := &model.User{ID: 1, IsAdmin: true}

	tests := []struct {
		name       string
		header     string
		clock      time.Time
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing header",
			clock:      now,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-jwt",
			clock:      now,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "fresh player",
			header:     "Bearer " + issue(t, player, now),
			clock:      now.Add(time.Minute),
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin past 20 minutes",
			header:     "Bearer " + issue(t, admin, now.Add(-21*time.Minute)),
			clock:      now,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Your Admin session has expired for security.",
		},
		{
			name:       "player at 21 minutes is fine",
			header:     "Bearer " + issue(t, player, now.Add(-21*time.Minute)),
			clock:      now,
			wantStatus: http.StatusOK,
		},
		{
			name:       "player past 24 hours",
			header:     "Bearer " + issue(t, player, now.Add(-25*time.Hour)),
			clock:      now,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Your Player session has expired for security.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := tt.clock
			h := Auth(testSecret, func() time.Time { return clock })(http.HandlerFunc(echoUserID))

			r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				var body resp.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body.Error)
				assert.Equal(t, "SessionExpired", body.Kind)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	now := time.Now()
	h := Auth(testSecret, nil)(AdminOnly(http.HandlerFunc(echoUserID)))

	for _, tc := range []struct {
		user *model.User
		want int
	}{
		{user: &model.User{ID: 2}, want: http.StatusForbidden},
		{user: &model.User{ID: 1, IsAdmin: true}, want: http.StatusOK},
	} {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		r.Header.Set("Authorization", "Bearer "+issue(t, tc.user, now))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, tc.want, w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Другой IP получает свой лимит
	r := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", nil)
	r.RemoteAddr = "10.0.0.2:5000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
