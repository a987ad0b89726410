package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"vault_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	refreshSession string
	refreshToken   string
	loggedOut      string
}

func (f *fakeAuth) SendOTP(context.Context, string) error { return nil }

func (f *fakeAuth) Register(_ context.Context, reg model.Registration) (*model.AuthData, error) {
	if reg.OTP != "123456" {
		return nil, model.ErrInvalidOTP
	}
	return f.data(), nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*model.AuthData, error) {
	if password != "pw" {
		return nil, model.ErrInvalidCredentials
	}
	return f.data(), nil
}

func (f *fakeAuth) Refresh(_ context.Context, sessionID, refreshToken string) (*model.AuthData, error) {
	f.refreshSession, f.refreshToken = sessionID, refreshToken
	if sessionID == "expired" {
		return nil, &model.SessionExpiredError{Kind: "Admin"}
	}
	return &model.AuthData{AccessToken: "access-2", SessionID: sessionID, User: &model.User{ID: 1}}, nil
}

func (f *fakeAuth) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = sessionID
	return nil
}

func (f *fakeAuth) data() *model.AuthData {
	return &model.AuthData{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		SessionID:    "sess-1",
		User:         &model.User{ID: 1, Email: "p@b.c"},
	}
}

func cookies(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestLogin_SetsCookies(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeAuth{}})

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"p@b.c","password":"pw"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accessToken":"access-1"`)
	assert.NotContains(t, w.Body.String(), "password")

	c := cookies(w)
	require.Contains(t, c, sessionIDCookie)
	require.Contains(t, c, refreshTokenCookie)
	assert.Equal(t, "sess-1", c[sessionIDCookie].Value)
	assert.Equal(t, "refresh-1", c[refreshTokenCookie].Value)
	assert.True(t, c[refreshTokenCookie].HttpOnly)
}

func TestLogin_BadCredentials(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeAuth{}})

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"p@b.c","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, cookies(w))
}

func TestRegister(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeAuth{}})

	w := httptest.NewRecorder()
	h.Register(w, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"P","email":"p@b.c","password":"pw","otp":"123456"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.Register(w, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"P","email":"p@b.c","password":"pw","otp":"000000"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Register(w, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh(t *testing.T) {
	svc := &fakeAuth{}
	h := NewHandler(HandlerDeps{Serv: svc})

	w := httptest.NewRecorder()
	h.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: sessionIDCookie, Value: "sess-1"})
	r.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "refresh-1"})
	w = httptest.NewRecorder()
	h.Refresh(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-1", svc.refreshSession)
	assert.Equal(t, "refresh-1", svc.refreshToken)
	assert.Contains(t, w.Body.String(), `"accessToken":"access-2"`)
}

func TestRefresh_ExpiredSessionClearsCookies(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeAuth{}})

	r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: sessionIDCookie, Value: "expired"})
	w := httptest.NewRecorder()
	h.Refresh(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Your Admin session has expired for security.")
	assert.Equal(t, -1, cookies(w)[sessionIDCookie].MaxAge)
}

func TestLogout(t *testing.T) {
	svc := &fakeAuth{}
	h := NewHandler(HandlerDeps{Serv: svc})

	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionIDCookie, Value: "sess-1"})
	w := httptest.NewRecorder()
	h.Logout(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "sess-1", svc.loggedOut)
}
