package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"courtly/internal/reservations/service"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type SyncHandler struct {
	service *service.SyncService
	log     *logger.Logger
}

func NewSyncHandler(service *service.SyncService, log *logger.Logger) *SyncHandler {
	return &SyncHandler{
		service: service,
		log:     log,
	}
}

// Sync answers version polls. last_seen_version is optional; omitting it (or
// sending 0) always returns the full dataset.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var lastSeen int64
	if raw := r.URL.Query().Get("last_seen_version"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			respondError(w, h.log, "Sync", apperrors.InvalidInput(fmt.Sprintf("invalid last_seen_version parameter: %s", raw)))
			return
		}
		lastSeen = parsed
	}

	response, err := h.service.Sync(r.Context(), lastSeen)
	if err != nil {
		respondError(w, h.log, "Sync", err)
		return
	}

	respondSuccess(w, h.log, "Sync", response)
}

// ListSlots returns the current customer-visible dataset without version
// gating. It is the browse endpoint; polling clients use Sync instead.
func (h *SyncHandler) ListSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	response, err := h.service.Sync(r.Context(), 0)
	if err != nil {
		respondError(w, h.log, "ListSlots", err)
		return
	}

	respondSuccess(w, h.log, "ListSlots", map[string]any{
		"data_version": response.DataVersion,
		"slots":        response.Slots,
		"activities":   response.Activities,
	})
}

func (h *SyncHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/sync", h.Sync)
	router.GET("/api/v1/slots", h.ListSlots)
}
