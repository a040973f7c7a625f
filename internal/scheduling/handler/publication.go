package handler

import (
	"net/http"

	"courtly/internal/scheduling/service"
	"courtly/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type PublicationHandler struct {
	service *service.PublicationService
	log     *logger.Logger
}

func NewPublicationHandler(service *service.PublicationService, log *logger.Logger) *PublicationHandler {
	return &PublicationHandler{
		service: service,
		log:     log,
	}
}

func (h *PublicationHandler) PublishAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result, err := h.service.PublishAll(r.Context())
	if err != nil {
		respondError(w, h.log, "PublishAll", err)
		return
	}

	respondSuccess(w, h.log, "PublishAll", result)
}

func (h *PublicationHandler) Pending(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pending, err := h.service.Pending(r.Context())
	if err != nil {
		respondError(w, h.log, "Pending", err)
		return
	}

	respondSuccess(w, h.log, "Pending", pending)
}

func (h *PublicationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/publish", h.PublishAll)
	router.GET("/api/v1/publish/pending", h.Pending)
}
