package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ContextRequestID is the gin context key holding the request id.
const ContextRequestID = "request_id"

// RequestID returns the id the request-id middleware stored, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Field   string      `json:"field,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: StatusSuccess,
		Data:   data,
	})
}

// RespondWithList sends a success response carrying a count.
func RespondWithList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{
		Status: StatusSuccess,
		Count:  &count,
		Data:   data,
	})
}

// RespondWithMessage sends a success response with no data.
func RespondWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Status:  StatusSuccess,
		Message: message,
	})
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	if appErr, ok := errors.As(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// RespondWithError sends an error response. Persistence faults are logged
// and reported without their cause.
func RespondWithError(c *gin.Context, err error) {
	status := StatusFor(err)
	resp := Response{Status: StatusError, Message: "internal server error"}

	if appErr, ok := errors.As(err); ok {
		resp.Code = appErr.Code.String()
		resp.Field = appErr.Field
		resp.Message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str(ContextRequestID, RequestID(c)).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(status, resp)
}
