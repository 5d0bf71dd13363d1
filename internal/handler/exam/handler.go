package exam

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/exam"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

const (
	entity    = "exam"
	fileField = "file"
)

type Handler struct {
	service exam.ExamService
	*handler.BaseHandler
}

func NewHandler(service exam.ExamService, base *handler.BaseHandler) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: base,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	exams := r.Group("/exams")
	{
		exams.POST("", h.CreateExam)
		exams.GET("", h.ListExams)
		exams.GET("/patient/:patientId", h.ListByPatient)
		exams.GET("/:id", h.GetExam)
		exams.PUT("/:id", h.UpdateExam)
		exams.DELETE("/:id", h.DeleteExam)
		exams.POST("/:id/upload", h.UploadAttachment)
	}
}

func (h *Handler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionCreated, e.ID, e)
	httputil.RespondWithSuccess(c, http.StatusCreated, e)
}

func (h *Handler) GetExam(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, e)
}

func (h *Handler) UpdateExam(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateExamRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionUpdated, e.ID, e)
	httputil.RespondWithSuccess(c, http.StatusOK, e)
}

func (h *Handler) DeleteExam(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionDeleted, id, nil)
	httputil.RespondWithMessage(c, "exam deleted")
}

func (h *Handler) ListExams(c *gin.Context) {
	exams, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, exams, len(exams))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, ok := h.PathID(c, "patientId")
	if !ok {
		return
	}

	exams, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, exams, len(exams))
}

// UploadAttachment accepts a multipart form with the attachment in "file".
func (h *Handler) UploadAttachment(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile(fileField)
	if err != nil {
		h.Fail(c, errors.InvalidInput("no file part in the request"))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.Fail(c, errors.InvalidInput("unreadable file part"))
		return
	}
	defer file.Close()

	e, err := h.service.Upload(c.Request.Context(), id, file, header.Filename)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionUpdated, e.ID, e)
	httputil.RespondWithSuccess(c, http.StatusOK, e)
}
