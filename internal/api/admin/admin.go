package admin

import (
	"net/http"
	dto "vault_backend/internal/api/dto/admin"
	announcementDTO "vault_backend/internal/api/dto/announcement"
	"vault_backend/internal/api/httperr"
	"vault_backend/internal/converter"
	"vault_backend/internal/service"
	"vault_backend/pkg/logger"
	"vault_backend/pkg/req"
	"vault_backend/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Admin        service.AdminService
	Wheel        service.WheelService
	Announcement service.AnnouncementService
}

// Handler - ручки админки, доступ проверяет middleware.AdminOnly
type Handler struct {
	admin        service.AdminService
	wheel        service.WheelService
	announcement service.AnnouncementService
	log          *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		admin:        deps.Admin,
		wheel:        deps.Wheel,
		announcement: deps.Announcement,
		log:          logger.Named("http.admin"),
	}
}

func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	players, err := h.admin.ListPlayers(r.Context())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProfiles(players))
}

func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.UpdateBalanceRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	user, err := h.admin.SetBalance(r.Context(), payload.Email, payload.NewBalance)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.UpdateBalanceResponse{
		Success: true,
		Balance: user.Balance,
	})
}

func (h *Handler) Rewards(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.wheel.GetConfig(r.Context())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToConfigResponse(cfg))
}

// UpdateRewards - можно прислать только секторы или только лимит
func (h *Handler) UpdateRewards(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.UpdateRewardsRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	cfg, err := h.wheel.UpdateConfig(r.Context(), converter.ToConfigPatch(payload))
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.UpdateRewardsResponse{
		Success: true,
		Config:  converter.ToConfigResponse(cfg),
	})
}

func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[announcementDTO.UpdateRequest](r.Body)
	if err != nil {
		httperr.BadRequest(w, err)
		return
	}

	a, err := h.announcement.Update(r.Context(), converter.ToAnnouncement(payload))
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, announcementDTO.UpdateResponse{
		Success:      true,
		Message:      "Broadcast protocol updated successfully.",
		Announcement: converter.ToAnnouncementDTO(a),
	})
}
