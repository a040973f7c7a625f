package handler

import (
	"encoding/json"
	"net/http"

	"courtly/internal/scheduling/generator"
	"courtly/internal/scheduling/service"
	apperrors "courtly/pkg/errors"
	httputil "courtly/pkg/http"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SlotHandler struct {
	service *service.SlotService
	log     *logger.Logger
}

func NewSlotHandler(service *service.SlotService, log *logger.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log,
	}
}

func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var slot model.TimeSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		respondError(w, h.log, "Create", apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &slot)
	if err != nil {
		respondError(w, h.log, "Create", err)
		return
	}

	respondCreated(w, h.log, "Create", created)
}

func (h *SlotHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req generator.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, "Generate", apperrors.InvalidInput("invalid request body"))
		return
	}

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		respondError(w, h.log, "Generate", err)
		return
	}

	respondCreated(w, h.log, "Generate", result)
}

func (h *SlotHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slot, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		respondError(w, h.log, "GetByID", err)
		return
	}

	respondSuccess(w, h.log, "GetByID", slot)
}

// GetAll lists slots. With start_date and end_date query parameters it
// returns the full range unpaginated, otherwise a paginated listing.
func (h *SlotHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	startDate := query.Get("start_date")
	endDate := query.Get("end_date")

	if startDate != "" || endDate != "" {
		if startDate == "" || endDate == "" {
			respondError(w, h.log, "GetAll", apperrors.InvalidInput("start_date and end_date must be provided together"))
			return
		}
		slots, err := h.service.ListByDateRange(r.Context(), startDate, endDate)
		if err != nil {
			respondError(w, h.log, "GetAll", err)
			return
		}
		respondSuccess(w, h.log, "GetAll", slots)
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		respondError(w, h.log, "GetAll", err)
		return
	}

	page, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, h.log, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, page.Slots, page.Total, page.Limit, page.Offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *SlotHandler) Move(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var move model.SlotMove
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		respondError(w, h.log, "Move", apperrors.InvalidInput("invalid request body"))
		return
	}

	slot, err := h.service.Move(r.Context(), ps.ByName("id"), &move)
	if err != nil {
		respondError(w, h.log, "Move", err)
		return
	}

	respondSuccess(w, h.log, "Move", slot)
}

func (h *SlotHandler) Resize(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var resize model.SlotResize
	if err := json.NewDecoder(r.Body).Decode(&resize); err != nil {
		respondError(w, h.log, "Resize", apperrors.InvalidInput("invalid request body"))
		return
	}

	slot, err := h.service.Resize(r.Context(), ps.ByName("id"), &resize)
	if err != nil {
		respondError(w, h.log, "Resize", err)
		return
	}

	respondSuccess(w, h.log, "Resize", slot)
}

func (h *SlotHandler) StageDeletion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.MarkPendingDeletion(r.Context(), ps.ByName("id")); err != nil {
		respondError(w, h.log, "StageDeletion", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *SlotHandler) UnstageDeletion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.CancelPendingDeletion(r.Context(), ps.ByName("id")); err != nil {
		respondError(w, h.log, "UnstageDeletion", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		respondError(w, h.log, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *SlotHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/slots", h.Create)
	router.POST("/api/v1/slots/generate", h.Generate)
	router.GET("/api/v1/slots", h.GetAll)
	router.GET("/api/v1/slots/id/:id", h.GetByID)
	router.PATCH("/api/v1/slots/id/:id/move", h.Move)
	router.PATCH("/api/v1/slots/id/:id/resize", h.Resize)
	router.PATCH("/api/v1/slots/id/:id/stage-deletion", h.StageDeletion)
	router.PATCH("/api/v1/slots/id/:id/unstage-deletion", h.UnstageDeletion)
	router.DELETE("/api/v1/slots/id/:id", h.Delete)
}
