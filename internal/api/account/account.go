package account

import (
	"net/http"
	dto "vault_backend/internal/api/dto/account"
	authDTO "vault_backend/internal/api/dto/auth"
	"vault_backend/internal/api/httperr"
	"vault_backend/internal/converter"
	"vault_backend/internal/middleware"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"
	"vault_backend/pkg/req"
	"vault_backend/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.AccountService
}

type Handler struct {
	serv service.AccountService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		log:  logger.Named("http.account"),
	}
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		httperr.Unauthorized(w)
		return
	}

	user, err := h.serv.Profile(r.Context(), userID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProfile(user))
}

// InitiateEmailChange отправляет код подтверждения на новую почту
func (h *Handler) InitiateEmailChange(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		httperr.Unauthorized(w)
		return
	}

	payload, err := req.Decode[dto.EmailChangeRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	if err := h.serv.InitiateEmailChange(r.Context(), userID, payload.NewEmail); err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, authDTO.MessageResponse{
		Success: true,
		Message: "Verification code sent to new email.",
	})
}

func (h *Handler) VerifyEmailChange(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		httperr.Unauthorized(w)
		return
	}

	payload, err := req.Decode[dto.VerifyEmailChangeRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	user, err := h.serv.VerifyEmailChange(r.Context(), userID, payload.OTP)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.VerifyEmailChangeResponse{
		Success: true,
		User:    converter.ToProfile(user),
	})
}
