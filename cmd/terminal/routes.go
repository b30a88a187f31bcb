package main

import (
	"context"
	"net/http"
	"time"

	"sarisari-pos/config"
	"sarisari-pos/internal/gateway/handlers"
	"sarisari-pos/internal/gateway/middleware"
	"sarisari-pos/internal/logger"
	"sarisari-pos/internal/shell"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type healthChecker interface {
	Health(ctx context.Context) error
	BaseURL() string
}

func newRouter(cfg config.Config, backend healthChecker, h *handlers.TerminalHTTPHandler, log *logger.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	limit, err := middleware.RateLimit(cfg.Terminal.RateLimit)
	if err != nil {
		return nil, err
	}

	r.Use(middleware.CORS())
	r.Use(middleware.Logging(log))
	r.Use(gin.Recovery())
	r.Use(backendHeaderMiddleware(backend))

	api := r.Group("/api/v1")
	api.Use(limit)
	h.RegisterRoutes(api)

	r.GET("/health", healthCheckHandler(backend))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	switch {
	case cfg.Shell.DevURL != "":
		log.Info("UI served by dev server", zap.String("url", cfg.Shell.DevURL))
	default:
		if err := shell.ServeBundle(r, cfg.Shell.BundleDir); err != nil {
			log.Warn("UI bundle not served", zap.Error(err))
		}
	}

	return r, nil
}

func backendHeaderMiddleware(backend healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Backend-URL", backend.BaseURL())
		c.Next()
	}
}

// healthCheckHandler reports degraded when the backend is unreachable.
func healthCheckHandler(backend healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status := "healthy"
		httpStatus := http.StatusOK
		backendStatus := gin.H{"status": "healthy", "message": "Backend is responding"}

		if err := backend.Health(ctx); err != nil {
			status = "degraded"
			httpStatus = http.StatusPartialContent
			backendStatus = gin.H{"status": "unavailable", "message": err.Error()}
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"message":   "Terminal is running",
			"backend":   backendStatus,
			"timestamp": time.Now(),
		})
	}
}
