package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/patient"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

const entity = "patient"

type Handler struct {
	service patient.PatientService
	*handler.BaseHandler
}

func NewHandler(service patient.PatientService, base *handler.BaseHandler) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: base,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/search", h.SearchPatients)
		patients.GET("/national-id/:nationalId", h.GetPatientByNationalID)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionCreated, p.ID, p)
	httputil.RespondWithSuccess(c, http.StatusCreated, p)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdatePatientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionUpdated, p.ID, p)
	httputil.RespondWithSuccess(c, http.StatusOK, p)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionDeleted, id, nil)
	httputil.RespondWithMessage(c, "patient deleted")
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, patients, len(patients))
}

func (h *Handler) SearchPatients(c *gin.Context) {
	patients, err := h.service.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, patients, len(patients))
}

func (h *Handler) GetPatientByNationalID(c *gin.Context) {
	p, err := h.service.GetByNationalID(c.Request.Context(), c.Param("nationalId"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, p)
}
