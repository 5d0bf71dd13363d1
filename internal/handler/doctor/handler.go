package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/doctor"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

const entity = "doctor"

type Handler struct {
	service doctor.DoctorService
	*handler.BaseHandler
}

func NewHandler(service doctor.DoctorService, base *handler.BaseHandler) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: base,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/search", h.SearchDoctors)
		doctors.GET("/specialty", h.FilterBySpecialty)
		doctors.GET("/national-id/:nationalId", h.GetDoctorByNationalID)
		doctors.GET("/registration/:registration", h.GetDoctorByRegistration)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionCreated, d.ID, d)
	httputil.RespondWithSuccess(c, http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, d)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateDoctorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionUpdated, d.ID, d)
	httputil.RespondWithSuccess(c, http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionDeleted, id, nil)
	httputil.RespondWithMessage(c, "doctor deleted")
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, doctors, len(doctors))
}

func (h *Handler) SearchDoctors(c *gin.Context) {
	doctors, err := h.service.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, doctors, len(doctors))
}

func (h *Handler) FilterBySpecialty(c *gin.Context) {
	doctors, err := h.service.FilterBySpecialty(c.Request.Context(), c.Query("specialty"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, doctors, len(doctors))
}

func (h *Handler) GetDoctorByNationalID(c *gin.Context) {
	d, err := h.service.GetByNationalID(c.Request.Context(), c.Param("nationalId"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, d)
}

func (h *Handler) GetDoctorByRegistration(c *gin.Context) {
	d, err := h.service.GetByRegistrationNumber(c.Request.Context(), c.Param("registration"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, d)
}
