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

type ActivityHandler struct {
	service *service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(service *service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		log:     log,
	}
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var activity model.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		respondError(w, h.log, "Create", apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &activity)
	if err != nil {
		respondError(w, h.log, "Create", err)
		return
	}

	respondCreated(w, h.log, "Create", created)
}

func (h *ActivityHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activity, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		respondError(w, h.log, "GetByID", err)
		return
	}

	respondSuccess(w, h.log, "GetByID", activity)
}

func (h *ActivityHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	activities, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, h.log, "GetAll", err)
		return
	}

	respondSuccess(w, h.log, "GetAll", activities)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.ActivityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, h.log, "Update", apperrors.InvalidInput("invalid request body"))
		return
	}

	activity, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		respondError(w, h.log, "Update", err)
		return
	}

	respondSuccess(w, h.log, "Update", activity)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		respondError(w, h.log, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ActivityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/activities", h.Create)
	router.GET("/api/v1/activities", h.GetAll)
	router.GET("/api/v1/activities/id/:id", h.GetByID)
	router.PATCH("/api/v1/activities/id/:id", h.Update)
	router.DELETE("/api/v1/activities/id/:id", h.Delete)
}
