// Package middleware holds the gin middleware of the memo panel: request
// ids, access logging, panic recovery and login throttling.
package middleware

import (
	"net/http"
	"time"

	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/web/entity"

	"github.com/gin-gonic/gin"
)

// Logger writes one access log line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		format := "%s %s %d %v ip=%s id=%s"
		args := []any{c.Request.Method, path, status, time.Since(start), c.ClientIP(), GetRequestID(c)}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Errorf(format, args...)
		case status >= http.StatusBadRequest:
			logger.Warningf(format, args...)
		default:
			logger.Infof(format, args...)
		}
	}
}

// Recovery turns a panic into a 500 envelope and logs the stack.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(logger.RecoveryWriter{}, func(c *gin.Context, err any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, entity.Msg{
			Success: false,
			Msg:     http.StatusText(http.StatusInternalServerError),
		})
	})
}
