// Package httperr переводит ошибки сервисов в HTTP ответы
package httperr

import (
	"context"
	"errors"
	"net/http"
	"vault_backend/internal/model"
	"vault_backend/pkg/resp"

	"go.uber.org/zap"
)

// Write пишет ответ для ошибки сервиса. Неизвестные ошибки логируются и отдаются как 500
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	var (
		limitErr   *model.LimitReachedError
		expiredErr *model.SessionExpiredError
	)

	switch {
	case errors.As(err, &limitErr):
		ms := limitErr.RetryAfter.Milliseconds()
		resp.WriteJSONResponse(w, http.StatusForbidden, resp.ErrorResponse{
			Kind:         "LimitReached",
			Error:        "Daily limit reached.",
			RetryAfterMs: &ms,
		})
	case errors.As(err, &expiredErr):
		resp.WriteError(w, http.StatusUnauthorized, "SessionExpired", expiredErr.Error())

	case errors.Is(err, model.ErrUserNotFound):
		resp.WriteError(w, http.StatusNotFound, "NotFound", "User not found.")
	case errors.Is(err, model.ErrAnnouncementNotFound):
		resp.WriteError(w, http.StatusNotFound, "NotFound", "Announcement not found.")
	case errors.Is(err, model.ErrConfigUnavailable):
		log.Error("wheel config unavailable", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "ConfigUnavailable", "Wheel is not configured.")
	case errors.Is(err, model.ErrSpinContention):
		resp.WriteError(w, http.StatusServiceUnavailable, "Contention", "Spin is busy, try again.")

	case errors.Is(err, model.ErrInvalidWheelConfig):
		resp.WriteError(w, http.StatusBadRequest, "InvalidConfig", err.Error())
	case errors.Is(err, model.ErrNoDrawableOutcome), errors.Is(err, model.ErrInvalidWeight):
		log.Error("stored wheel config is not drawable", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "ConfigUnavailable", "Wheel is misconfigured.")

	case errors.Is(err, model.ErrInvalidCredentials):
		resp.WriteError(w, http.StatusUnauthorized, "InvalidCredentials", "Invalid credentials.")
	case errors.Is(err, model.ErrSessionNotFound), errors.Is(err, model.ErrInvalidRefreshToken):
		resp.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Session is not valid.")
	case errors.Is(err, model.ErrInvalidOTP):
		resp.WriteError(w, http.StatusBadRequest, "InvalidOTP", "Invalid or expired verification code.")
	case errors.Is(err, model.ErrEmailTaken):
		resp.WriteError(w, http.StatusConflict, "EmailTaken", "Email already registered.")
	case errors.Is(err, model.ErrEmailUnchanged):
		resp.WriteError(w, http.StatusBadRequest, "InvalidInput", "New email must be different.")
	case errors.Is(err, model.ErrImageRequired):
		resp.WriteError(w, http.StatusBadRequest, "InvalidInput", "Image content is required. Please upload or paste a valid source.")
	case errors.Is(err, model.ErrInvalidInput):
		resp.WriteError(w, http.StatusBadRequest, "InvalidInput", err.Error())
	case errors.Is(err, model.ErrMailDelivery):
		resp.WriteError(w, http.StatusBadGateway, "MailDelivery", "Failed to send email. Check SMTP settings.")

	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("request timed out", zap.Error(err))
		resp.WriteError(w, http.StatusGatewayTimeout, "Timeout", "Request timed out.")
	default:
		log.Error("unhandled error", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "Internal", "Internal server error.")
	}
}

// BadRequest - тело запроса не разобралось
func BadRequest(w http.ResponseWriter, err error) {
	resp.WriteError(w, http.StatusBadRequest, "InvalidInput", err.Error())
}

func Unauthorized(w http.ResponseWriter) {
	resp.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required.")
}
