package middleware

import (
	"time"

	"whisper-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware writes one line per request: method, path, status
// and latency. The path is captured before c.Next so a handler that
// rewrites the URL does not change what gets logged.
func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log := l
		if log == nil {
			log = logger.GetGlobalLogger()
		}
		if log != nil {
			log.Infof("%s %s %d %s", method, path, c.Writer.Status(), time.Since(start).String())
		}
	}
}
