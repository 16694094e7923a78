package middleware

import (
	"regexp"
	"time"

	"git.thinkinpower.net/bincheck/data"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

const (
	ctxKeyRequestId    = "request_id"
	maxRequestIdLength = 128
)

var validRequestId = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// RequestId takes X-Request-ID from the client when it is safe to log, otherwise
// generates one, and echoes it on the response.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(data.HeaderRequestId)
		if id == "" || len(id) > maxRequestIdLength || !validRequestId.MatchString(id) {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestId, id)
		c.Header(data.HeaderRequestId, id)
		c.Next()
	}
}

func GetRequestId(c *gin.Context) string {
	return c.GetString(ctxKeyRequestId)
}

// Log writes one entry per request once the handler chain returns.
func Log() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		statusCode := c.Writer.Status()

		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}

		entry := logger.WithFields(logger.Fields{
			"requestId":  GetRequestId(c),
			"statusCode": statusCode,
			"latencyMs":  latency.Milliseconds(),
			"clientIp":   c.ClientIP(),
			"method":     c.Request.Method,
			"path":       path,
			"dataLength": dataLength,
			"userAgent":  c.Request.UserAgent(),
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		} else if statusCode > 499 {
			entry.Error("request failed")
		} else if statusCode > 399 {
			entry.Warn("request rejected")
		} else {
			entry.Info("request served")
		}
	}
}
