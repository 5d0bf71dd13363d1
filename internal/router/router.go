package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

const APIPrefix = "/api/v1"

type Handler interface {
	RegisterRoutes(gin.IRouter)
}

type RouterConfig struct {
	Mode        string
	RateLimit   rate.Limit
	RateBurst   int
	CORSConfig  middleware.CORSConfig
	Timeout     time.Duration
	SizeLimit   middleware.SizeLimitConfig
	AuthEnabled bool
}

type Router struct {
	engine    *gin.Engine
	config    RouterConfig
	auth      *middleware.AuthMiddleware
	health    Handler
	public    []Handler
	protected []Handler
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
}

// NewRouter wires the middleware chain. public handlers are never guarded;
// protected ones require a bearer token when AuthEnabled is set.
func NewRouter(
	config RouterConfig,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	auth *middleware.AuthMiddleware,
	health Handler,
	public []Handler,
	protected []Handler,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	r := &Router{
		engine:    engine,
		config:    config,
		auth:      auth,
		health:    health,
		public:    public,
		protected: protected,
		metrics:   m,
		gatherer:  gatherer,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.SecurityHeaders(),
		middleware.CORS(config.CORSConfig),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)

	return r
}

func (r *Router) Setup() {
	r.health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", handler.MetricsHandler(r.gatherer))

	api := r.engine.Group(APIPrefix)
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})
	api.Use(middleware.SizeLimit(r.config.SizeLimit))
	if r.config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.RateLimit,
			Burst: r.config.RateBurst,
		})
		api.Use(limiter.RateLimit())
	}

	for _, h := range r.public {
		h.RegisterRoutes(api)
	}

	protected := api.Group("")
	if r.config.AuthEnabled && r.auth != nil {
		protected.Use(r.auth.Authenticate())
	}
	for _, h := range r.protected {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if r.metrics == nil {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
