package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/export"
	"screening-backend/internal/generate"
	"screening-backend/internal/ingest"
	"screening-backend/internal/jobs"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/server/middleware"
	"screening-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	JobsHandler     *jobs.Handler
	IngestHandler   *ingest.Handler
	ExportHandler   *export.Handler
	GenerateHandler *generate.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(api)
	}
	if deps.IngestHandler != nil {
		deps.IngestHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}
	if deps.GenerateHandler != nil {
		deps.GenerateHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimits keeps uploads from starving the rest of the API while letting
// status polling run hotter than the default bucket.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 20},
			"POLLING": {Rate: 25, Burst: 50},
			"UPLOAD":  {Rate: 2, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			switch {
			case c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/resumes"):
				return "UPLOAD"
			case c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/jobs/:id":
				return "POLLING"
			default:
				return "DEFAULT"
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
