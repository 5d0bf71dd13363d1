package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

type recordingPublisher struct {
	channels []string
	messages []interface{}
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, message interface{}) error {
	p.channels = append(p.channels, channel)
	p.messages = append(p.messages, message)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPublish(t *testing.T) {
	pub := &recordingPublisher{}
	m := metrics.New("test", prometheus.NewRegistry())
	h := NewBaseHandler(pub, "clinic.events", m)
	c, _ := testContext("/")
	id := uuid.New()

	h.Publish(c, "patient", ActionCreated, id, map[string]string{"name": "Ana"})

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "clinic.events", pub.channels[0])
	event, ok := pub.messages[0].(model.Event)
	require.True(t, ok)
	assert.Equal(t, "patient.created", event.Type)
	assert.Equal(t, id, event.EntityID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("patient.created", "success")))
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: stderrors.New("redis down")}
	m := metrics.New("test", prometheus.NewRegistry())
	h := NewBaseHandler(pub, "clinic.events", m)
	c, w := testContext("/")

	h.Publish(c, "exam", ActionDeleted, uuid.New(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("exam.deleted", "error")))
}

func TestPathID(t *testing.T) {
	h := NewBaseHandler(nil, "", nil)

	c, w := testContext("/patients/nope")
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	_, ok := h.PathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.New()
	c, _ = testContext("/patients/" + id.String())
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := h.PathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
