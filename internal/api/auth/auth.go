package auth

import (
	"net/http"
	dto "vault_backend/internal/api/dto/auth"
	"vault_backend/internal/api/httperr"
	"vault_backend/internal/converter"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"
	"vault_backend/pkg/req"
	"vault_backend/pkg/resp"

	"go.uber.org/zap"
)

const (
	sessionIDCookie    = "session_id"
	refreshTokenCookie = "refresh_token"
	cookieMaxAge       = 30 * 24 * 60 * 60 // 30 дней
)

type HandlerDeps struct {
	Serv service.AuthService
	// SecureCookies - выставлять Secure у cookies, включается за HTTPS
	SecureCookies bool
}

type Handler struct {
	serv   service.AuthService
	secure bool
	log    *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:   deps.Serv,
		secure: deps.SecureCookies,
		log:    logger.Named("http.auth"),
	}
}

// SendOTP отправляет код регистрации на почту
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.SendOTPRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	if err := h.serv.SendOTP(r.Context(), requestBody.Email); err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "OTP sent to your email.",
	})
}

// Register создаёт пользователя, открывает сессию
// и возвращает access_token, session_id и refresh_token через cookies
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	data, err := h.serv.Register(r.Context(), converter.ToRegistration(requestBody))
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	h.setSessionIDCookie(w, data.SessionID)
	h.setRefreshTokenCookie(w, data.RefreshToken)

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToAuthResponse(data))
}

// Login создаёт сессию и возвращает access_token, session_id и refresh_token через cookies
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Email, requestBody.Password)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	h.setSessionIDCookie(w, data.SessionID)
	h.setRefreshTokenCookie(w, data.RefreshToken)

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAuthResponse(data))
}

// Refresh обновляет access_token по session_id и refresh_token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := cookieValue(r, sessionIDCookie)
	if !ok {
		httperr.Unauthorized(w)
		return
	}
	refreshToken, _ := cookieValue(r, refreshTokenCookie)

	data, err := h.serv.Refresh(r.Context(), sessionID, refreshToken)
	if err != nil {
		// Сессия больше не действительна, cookies клиенту не нужны
		h.deleteCookies(w)
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAuthResponse(data))
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := cookieValue(r, sessionIDCookie)
	if !ok {
		httperr.Unauthorized(w)
		return
	}

	if err := h.serv.Logout(r.Context(), sessionID); err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	h.deleteCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func cookieValue(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// setRefreshTokenCookie устанавливает cookie с refresh_token
func (h *Handler) setRefreshTokenCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   cookieMaxAge,
	})
}

// setSessionIDCookie устанавливает cookie с session_id
func (h *Handler) setSessionIDCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   cookieMaxAge,
	})
}

// deleteCookies удаляет cookies сессии
func (h *Handler) deleteCookies(w http.ResponseWriter) {
	for name, path := range map[string]string{sessionIDCookie: "/", refreshTokenCookie: "/api/auth"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     path,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
