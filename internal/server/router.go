package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDependencies collects handler dependencies
type RouterDependencies struct {
	Handlers       *Handlers
	AllowedOrigins []string
	TablesVersion  string
}

// NewRouter wires the HTTP routes exposed by the API
func NewRouter(logger *slog.Logger, deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	if len(deps.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		if slices.Contains(deps.AllowedOrigins, "*") {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = deps.AllowedOrigins
		}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "tables_version": deps.TablesVersion})
	})

	if deps.Handlers != nil {
		deps.Handlers.RegisterRoutes(router.Group("/api/v1"))
	}
	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
