package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
)

type RequestLogger struct {
	log *logger.Logger
}

func NewRequestLogger(log *logger.Logger) *RequestLogger {
	return &RequestLogger{log: log.With("middleware", "RequestLogger")}
}

// Log emits one structured line per request after the handler returns.
func (rl *RequestLogger) Log() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rl.log.Info("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
