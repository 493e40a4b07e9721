package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kendall-kelly/cafe-tropis-api/logger"
)

// RequestIDHeader carries the request id in and out of the service
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when present,
// and stores it on the request context for structured logs
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one structured line per completed request
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if staffID, err := GetUserID(c); err == nil {
			attrs = append(attrs, slog.String("staff_id", staffID))
		}
		requestID := logger.RequestID(c.Request.Context())

		if status := c.Writer.Status(); status >= 500 {
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			log.Error("http_request", requestID, "Request failed", err, attrs...)
		} else {
			log.Info("http_request", requestID, "Request completed", attrs...)
		}
	}
}
