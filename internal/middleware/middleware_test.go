package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", "clinic-api", time.Hour)
	user := &model.User{Base: model.Base{ID: uuid.New()}, Username: "reception", Role: "admin"}
	token, err := jwtSvc.GenerateAccessToken(user)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(NewAuthMiddleware(jwtSvc).Authenticate())
	engine.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUsername)+"/"+c.GetString(ContextUserID))
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(engine, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "reception/"+user.ID.String(), w.Body.String())
			}
		})
	}
}

func TestRateLimitPerClient(t *testing.T) {
	limiter := NewRateLimiter(RateLimiterConfig{Rate: rate.Every(time.Hour), Burst: 1})
	engine := gin.New()
	engine.Use(limiter.RateLimit())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	request := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(engine, req).Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1"))
	assert.Equal(t, http.StatusOK, request("10.0.0.2"))
}

func TestSizeLimit(t *testing.T) {
	engine := gin.New()
	engine.Use(SizeLimit(SizeLimitConfig{MaxBodySize: 8, MaxUploadSize: 64}))
	engine.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"too long"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(engine, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"too long"}`))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	assert.Equal(t, http.StatusOK, serve(engine, req).Code)
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery())
	engine.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRequestIDAndSecurityHeaders(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), SecurityHeaders())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))
	assert.Equal(t, w.Header().Get(HeaderXRequestID), w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	w = serve(engine, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderXRequestID))
}

func TestRequestIDReplacesUnusableHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, rid := range []string{strings.Repeat("a", 65), "has space", "tab\there"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderXRequestID, rid)
		w := serve(engine, req)

		got := w.Header().Get(HeaderXRequestID)
		assert.NotEqual(t, rid, got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, rid)
	}
}

func TestRequestIDAttachesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("handled")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	serve(engine, req)

	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
	assert.Contains(t, buf.String(), `"message":"handled"`)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	engine := gin.New()
	engine.Use(Timeout(TimeoutConfig{Duration: time.Minute}))
	engine.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(engine, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
