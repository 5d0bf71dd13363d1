package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/user"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const entity = "user"

type Handler struct {
	service user.UserService
	*handler.BaseHandler
}

func NewHandler(service user.UserService, base *handler.BaseHandler) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: base,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/username/:username", h.GetUserByUsername)
		users.GET("/email/:email", h.GetUserByEmail)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
		users.PUT("/:id/password", h.SetPassword)
	}
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionCreated, u.ID, u)
	httputil.RespondWithSuccess(c, http.StatusCreated, u)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionUpdated, u.ID, u)
	httputil.RespondWithSuccess(c, http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, handler.ActionDeleted, id, nil)
	httputil.RespondWithMessage(c, "user deleted")
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithList(c, users, len(users))
}

func (h *Handler) GetUserByUsername(c *gin.Context) {
	u, err := h.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, u)
}

func (h *Handler) GetUserByEmail(c *gin.Context) {
	u, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.Fail(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, u)
}

func (h *Handler) SetPassword(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req model.SetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := validator.Required(validator.Field{Name: "password", Value: req.Password}); err != nil {
		h.Fail(c, err)
		return
	}

	u, err := h.service.SetPassword(c.Request.Context(), id, req.Password)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, entity, "password_changed", u.ID, nil)
	httputil.RespondWithMessage(c, "password updated")
}
