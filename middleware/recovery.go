package middleware

import (
	"net/http"
	"runtime/debug"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// Recovery turns a handler panic into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logger.Fields{
					"requestId": GetRequestId(c),
					"method":    c.Request.Method,
					"path":      c.Request.URL.Path,
					"panic":     err,
					"stack":     string(debug.Stack()),
				}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					mod.ResponseValue{Code: mod.ResponseCodeFailure, Msg: "internal server error"})
			}
		}()
		c.Next()
	}
}
