package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

// LoginService issues tokens for valid credentials.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*model.TokenResponse, error)
}

// PasswordResetter resets a password by account email.
type PasswordResetter interface {
	ResetPasswordByEmail(ctx context.Context, email, password string) (*model.User, error)
}

type Handler struct {
	svc   LoginService
	users PasswordResetter
	*handler.BaseHandler
}

func NewHandler(svc LoginService, users PasswordResetter, base *handler.BaseHandler) *Handler {
	return &Handler{
		svc:         svc,
		users:       users,
		BaseHandler: base,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := validator.Required(
		validator.Field{Name: "username", Value: req.Username},
		validator.Field{Name: "password", Value: req.Password},
	); err != nil {
		h.Fail(c, err)
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Fail(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, tokens)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := validator.Required(
		validator.Field{Name: "email", Value: req.Email},
		validator.Field{Name: "password", Value: req.Password},
	); err != nil {
		h.Fail(c, err)
		return
	}

	user, err := h.users.ResetPasswordByEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.Publish(c, "user", "password_reset", user.ID, nil)
	httputil.RespondWithMessage(c, "password reset")
}
