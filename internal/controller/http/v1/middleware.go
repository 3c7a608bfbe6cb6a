package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/valpere/translay/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, reusing the caller's when present, and puts a
// logger carrying that id into the request context.
func requestID(l logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Header(requestIDHeader, id)

		ctx := logger.WithContext(c.Request.Context(), l.With("request_id", id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func accessLog(l logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.FromContext(c.Request.Context(), l).Info("http - %s %s %d %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
