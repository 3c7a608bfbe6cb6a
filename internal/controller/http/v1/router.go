// Package v1 implements routing paths. Each services in own file.
package v1

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valpere/translay/internal"
	"github.com/valpere/translay/internal/config"
	"github.com/valpere/translay/pkg/logger"
)

// Translator is the fallback chain as seen by the HTTP layer.
type Translator interface {
	Translate(ctx context.Context, req internal.TranslationRequest) (*internal.TranslationResult, error)
}

// NewRouter -.
// Swagger:
// @title       Translator API
// @description Translation relay with provider fallback
// @version     1.0
// @host        localhost:3000
// @BasePath    /
func NewRouter(handler *gin.Engine, l logger.Interface, t Translator, identity config.IdentityConfig, gatherer prometheus.Gatherer) {
	// Options
	handler.Use(requestID(l))
	handler.Use(accessLog(l))
	handler.Use(gin.CustomRecoveryWithWriter(io.Discard, recovery(l)))
	handler.Use(cors())

	// monitor
	if gatherer != nil {
		handler.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Routers:
	newStatusRoutes(handler, identity)
	newTranslationRoutes(handler, t, l)
}

func recovery(l logger.Interface) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context(), l).Error("http - v1 - recovered panic: %v", recovered)
		errorResponse(c, internal.Internal)
	}
}

func errorResponse(c *gin.Context, kind internal.ErrorKind) {
	c.AbortWithStatusJSON(kind.Status(), internal.NewError(kind, nil).Result())
}

// cors allows any origin and answers preflight requests directly.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
