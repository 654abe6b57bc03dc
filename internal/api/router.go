package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quakemap/quake-backend-go/internal/config"
	"github.com/quakemap/quake-backend-go/internal/handler"
	"github.com/quakemap/quake-backend-go/internal/metrics"
	"github.com/quakemap/quake-backend-go/internal/middleware"
)

// SetupRouter wires middleware, templates and routes.
func SetupRouter(cfg *config.Config, qh *handler.QuakeHandler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(300, time.Minute))
	r.Use(middleware.Session())

	r.LoadHTMLGlob(cfg.TemplatesGlob)
	r.Static("/static", cfg.StaticDir)

	r.GET("/", qh.Index)
	r.GET("/quakes", qh.Quakes)
	r.GET("/health", qh.Health)
	r.GET("/metrics", m.Handler())

	return r
}
