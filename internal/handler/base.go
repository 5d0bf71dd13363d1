package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/messaging"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const publishTimeout = 2 * time.Second

// Event actions appended to the entity name, e.g. "patient.created".
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// BaseHandler carries what every entity handler shares.
type BaseHandler struct {
	Publisher messaging.Publisher
	Channel   string
	Metrics   *metrics.Metrics
}

func NewBaseHandler(publisher messaging.Publisher, channel string, m *metrics.Metrics) *BaseHandler {
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}
	return &BaseHandler{
		Publisher: publisher,
		Channel:   channel,
		Metrics:   m,
	}
}

// PathID parses a UUID path parameter. On failure it writes the error
// response and returns false.
func (h *BaseHandler) PathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := validator.ParseID(param, c.Param(param))
	if err != nil {
		httputil.RespondWithError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes the request body into req. On failure it writes the error
// response and returns false.
func (h *BaseHandler) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.RespondWithError(c, errors.InvalidInput("invalid request body"))
		return false
	}
	return true
}

// Fail renders err.
func (h *BaseHandler) Fail(c *gin.Context, err error) {
	httputil.RespondWithError(c, err)
}

// Publish emits a domain event after a committed write. Failures are logged
// and never reach the client.
func (h *BaseHandler) Publish(c *gin.Context, entity, action string, id uuid.UUID, payload interface{}) {
	event := model.Event{
		ID:         uuid.New(),
		Type:       entity + "." + action,
		EntityID:   id,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
	defer cancel()

	status := "success"
	if err := h.Publisher.Publish(ctx, h.Channel, event); err != nil {
		status = "error"
		log.Warn().Err(err).
			Str("event_type", event.Type).
			Str("entity_id", id.String()).
			Str(httputil.ContextRequestID, httputil.RequestID(c)).
			Msg("failed to publish event")
	}
	if h.Metrics != nil {
		h.Metrics.EventsPublished.WithLabelValues(event.Type, status).Inc()
	}
}
