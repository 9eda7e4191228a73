package utils

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type errorLogWriter struct {
	gin.ResponseWriter
	gc     *gin.Context
	logger *log.Logger
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		w.logger.Debug("error response", "status", status, "body", string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware doesn't work with GZIP
func ErrorLogMiddleware(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = errorLogWriter{gc: c, ResponseWriter: c.Writer, logger: logger}
		c.Next()
	}
}
