package handler

import (
	"encoding/json"
	"net/http"

	"courtly/internal/reservations/service"
	apperrors "courtly/pkg/errors"
	httputil "courtly/pkg/http"
	"courtly/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service *service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service *service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, "Reserve", apperrors.InvalidInput("invalid request body"))
		return
	}

	result, err := h.service.Reserve(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, "Reserve", err)
		return
	}

	respondCreated(w, h.log, "Reserve", result)
}

func (h *ReservationHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		respondError(w, h.log, "GetBooking", err)
		return
	}

	respondSuccess(w, h.log, "GetBooking", booking)
}

func (h *ReservationHandler) GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		respondError(w, h.log, "GetBookings", err)
		return
	}

	page, err := h.service.ListBookings(r.Context(), limit, offset)
	if err != nil {
		respondError(w, h.log, "GetBookings", err)
		return
	}

	if err := httputil.WritePaginated(w, page.Bookings, page.Total, page.Limit, page.Offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetBookings", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Reserve)
	router.GET("/api/v1/bookings", h.GetBookings)
	router.GET("/api/v1/bookings/id/:id", h.GetBooking)
}
