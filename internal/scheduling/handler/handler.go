package handler

import (
	"net/http"

	httputil "courtly/pkg/http"
	"courtly/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// SchedulingHandler aggregates every operator-facing route group behind one
// router registration.
type SchedulingHandler struct {
	slots      *SlotHandler
	publish    *PublicationHandler
	closures   *ClosureHandler
	activities *ActivityHandler
	settings   *SettingsHandler
}

func NewSchedulingHandler(
	slots *SlotHandler,
	publish *PublicationHandler,
	closures *ClosureHandler,
	activities *ActivityHandler,
	settings *SettingsHandler,
) *SchedulingHandler {
	return &SchedulingHandler{
		slots:      slots,
		publish:    publish,
		closures:   closures,
		activities: activities,
		settings:   settings,
	}
}

func (h *SchedulingHandler) RegisterRoutes(router *httprouter.Router) {
	h.slots.RegisterRoutes(router)
	h.publish.RegisterRoutes(router)
	h.closures.RegisterRoutes(router)
	h.activities.RegisterRoutes(router)
	h.settings.RegisterRoutes(router)
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
