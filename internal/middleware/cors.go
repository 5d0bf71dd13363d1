package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type CORSConfig struct {
	AllowOrigins     []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// CORS builds the gin-contrib/cors middleware. A "*" origin with credentials
// echoes the request origin.
func CORS(config CORSConfig) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			HeaderXRequestID,
		},
		ExposeHeaders:    []string{"Content-Length", HeaderXRequestID},
		AllowCredentials: config.AllowCredentials,
		MaxAge:           config.MaxAge,
	}

	wildcard := len(config.AllowOrigins) == 0
	for _, o := range config.AllowOrigins {
		if o == "*" {
			wildcard = true
		}
	}
	switch {
	case wildcard && config.AllowCredentials:
		cfg.AllowOriginFunc = func(string) bool { return true }
	case wildcard:
		cfg.AllowAllOrigins = true
	default:
		cfg.AllowOrigins = config.AllowOrigins
	}

	return cors.New(cfg)
}
