package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/appointment"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

const entity = "appointment"

type Handler struct {
	service appointment.AppointmentService
	*handler.BaseHandler
}

func NewHandler(service appointment.AppointmentService, base *handler.BaseHandler) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: base,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/patient/:patientId", h.ListByPatient)
		appointments.GET("/doctor/:doctorId", h.ListByDoctor)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionCreated, a.ID, a)
	httputil.RespondWithSuccess(c, http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAppointmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionUpdated, a.ID, a)
	httputil.RespondWithSuccess(c, http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionDeleted, id, nil)
	httputil.RespondWithMessage(c, "appointment deleted")
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, appointments, len(appointments))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, ok := h.PathID(c, "patientId")
	if !ok {
		return
	}

	appointments, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, appointments, len(appointments))
}

func (h *Handler) ListByDoctor(c *gin.Context) {
	doctorID, ok := h.PathID(c, "doctorId")
	if !ok {
		return
	}

	appointments, err := h.service.ListByDoctor(c.Request.Context(), doctorID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, appointments, len(appointments))
}
