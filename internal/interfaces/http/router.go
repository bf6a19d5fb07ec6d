// Package http wires the gin router and the server lifecycle.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
	"github.com/voracio/sheetsense/internal/interfaces/http/handlers"
	"github.com/voracio/sheetsense/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router needs. MetricsHandler and
// Metrics may be nil, in which case /metrics is not registered.
type RouterDeps struct {
	Resolver       handlers.Resolver
	Logger         logging.Logger
	Metrics        middleware.HTTPMetrics
	MetricsHandler nethttp.Handler
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Logger.Named("http"), deps.Metrics))

	r.GET("/healthz", handlers.Health)
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := r.Group("/api/v1")
	{
		h := handlers.NewResolveHandler(deps.Resolver)
		api.POST("/resolve", h.Resolve)
	}
	return r
}
