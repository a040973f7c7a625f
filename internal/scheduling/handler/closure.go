package handler

import (
	"encoding/json"
	"net/http"

	"courtly/internal/scheduling/service"
	apperrors "courtly/pkg/errors"
	httputil "courtly/pkg/http"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ClosureHandler struct {
	service *service.ClosureService
	log     *logger.Logger
}

func NewClosureHandler(service *service.ClosureService, log *logger.Logger) *ClosureHandler {
	return &ClosureHandler{
		service: service,
		log:     log,
	}
}

func (h *ClosureHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var closure model.ClosedPeriod
	if err := json.NewDecoder(r.Body).Decode(&closure); err != nil {
		respondError(w, h.log, "Create", apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &closure)
	if err != nil {
		respondError(w, h.log, "Create", err)
		return
	}

	respondCreated(w, h.log, "Create", created)
}

func (h *ClosureHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	closure, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		respondError(w, h.log, "GetByID", err)
		return
	}

	respondSuccess(w, h.log, "GetByID", closure)
}

func (h *ClosureHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	closures, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, h.log, "GetAll", err)
		return
	}

	respondSuccess(w, h.log, "GetAll", closures)
}

func (h *ClosureHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.ClosedPeriod
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, h.log, "Update", apperrors.InvalidInput("invalid request body"))
		return
	}

	closure, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		respondError(w, h.log, "Update", err)
		return
	}

	respondSuccess(w, h.log, "Update", closure)
}

func (h *ClosureHandler) StageDeletion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.MarkPendingDeletion(r.Context(), ps.ByName("id")); err != nil {
		respondError(w, h.log, "StageDeletion", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ClosureHandler) UnstageDeletion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.CancelPendingDeletion(r.Context(), ps.ByName("id")); err != nil {
		respondError(w, h.log, "UnstageDeletion", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ClosureHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		respondError(w, h.log, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ClosureHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/closures", h.Create)
	router.GET("/api/v1/closures", h.GetAll)
	router.GET("/api/v1/closures/id/:id", h.GetByID)
	router.PUT("/api/v1/closures/id/:id", h.Update)
	router.PATCH("/api/v1/closures/id/:id/stage-deletion", h.StageDeletion)
	router.PATCH("/api/v1/closures/id/:id/unstage-deletion", h.UnstageDeletion)
	router.DELETE("/api/v1/closures/id/:id", h.Delete)
}
