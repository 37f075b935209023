package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLogger logs the errors handlers attached with c.Error once the chain
// has run. Responses carry generic messages, so this is where causes end up.
func ErrorLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"route", c.FullPath(),
				"status", c.Writer.Status(),
				"error", e.Err,
			)
		}
	}
}
