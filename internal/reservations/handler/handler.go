package handler

import (
	"net/http"

	httputil "courtly/pkg/http"
	"courtly/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// ReservationsHandler aggregates the customer-facing route groups.
type ReservationsHandler struct {
	reservations *ReservationHandler
	sync         *SyncHandler
}

func NewReservationsHandler(reservations *ReservationHandler, sync *SyncHandler) *ReservationsHandler {
	return &ReservationsHandler{
		reservations: reservations,
		sync:         sync,
	}
}

func (h *ReservationsHandler) RegisterRoutes(router *httprouter.Router) {
	h.reservations.RegisterRoutes(router)
	h.sync.RegisterRoutes(router)
}

func respondError(w http.ResponseWriter, log *logger.Logger, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func respondSuccess(w http.ResponseWriter, log *logger.Logger, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		log.Error("failed to write success response", "handler", handler, "error", err)
	}
}

func respondCreated(w http.ResponseWriter, log *logger.Logger, handler string, data any) {
	if err := httputil.WriteCreated(w, data); err != nil {
		log.Error("failed to write created response", "handler", handler, "error", err)
	}
}
