package handler

import (
	"encoding/json"
	"net/http"

	"courtly/internal/scheduling/service"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SettingsHandler struct {
	service *service.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(service *service.SettingsService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		log:     log,
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		respondError(w, h.log, "Get", err)
		return
	}

	respondSuccess(w, h.log, "Get", settings)
}

func (h *SettingsHandler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var update model.WorkingHoursUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, h.log, "UpdateWorkingHours", apperrors.InvalidInput("invalid request body"))
		return
	}

	settings, err := h.service.UpdateWorkingHours(r.Context(), &update)
	if err != nil {
		respondError(w, h.log, "UpdateWorkingHours", err)
		return
	}

	respondSuccess(w, h.log, "UpdateWorkingHours", settings)
}

func (h *SettingsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/settings/working-hours", h.Get)
	router.PUT("/api/v1/settings/working-hours", h.UpdateWorkingHours)
}
