package announcement

import (
	"net/http"
	"vault_backend/internal/api/httperr"
	"vault_backend/internal/converter"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"
	"vault_backend/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.AnnouncementService
}

type Handler struct {
	serv service.AnnouncementService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		log:  logger.Named("http.announcement"),
	}
}

// Get - текущий баннер, публичный
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.serv.Get(r.Context())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAnnouncementDTO(a))
}
