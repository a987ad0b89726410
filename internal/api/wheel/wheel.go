package wheel

import (
	"net/http"
	"strconv"
	"vault_backend/internal/api/httperr"
	"vault_backend/internal/converter"
	"vault_backend/internal/middleware"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"
	"vault_backend/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.WheelService
}

type Handler struct {
	serv service.WheelService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		log:  logger.Named("http.wheel"),
	}
}

// Config - секторы и дневной лимит для отрисовки колеса
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.serv.GetConfig(r.Context())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToConfigResponse(cfg))
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		httperr.Unauthorized(w)
		return
	}

	status, err := h.serv.Status(r.Context(), userID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatusResponse(status))
}

// Spin - игрок берется из токена, тело запроса не нужно
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		httperr.Unauthorized(w)
		return
	}

	result, err := h.serv.Spin(r.Context(), userID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(result))
}

// History - последние спины игрока, ?limit=N
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		httperr.Unauthorized(w)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			resp.WriteError(w, http.StatusBadRequest, "InvalidInput", "limit must be a non-negative integer")
			return
		}
	}

	records, err := h.serv.History(r.Context(), userID, limit)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(records))
}
