package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestID makes sure every request carries an id, reusing the caller's.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestID(c)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := append(requestFields(c, start), zap.Int("status", status))
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// ErrorLogger logs handler errors and recovers from panics.
func ErrorLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Error("panic", append(requestFields(c, start), zap.Error(err), zap.Stack("stack"))...)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
				return
			}

			for _, err := range c.Errors {
				fields := append(requestFields(c, start),
					zap.Int("status", c.Writer.Status()),
					zap.Uint64("type", uint64(err.Type)),
					zap.Error(err.Err),
				)
				if err.Meta != nil {
					fields = append(fields, zap.Any("meta", err.Meta))
				}
				log.Error("request_error", fields...)
			}
		}()

		c.Next()
	}
}

func requestFields(c *gin.Context, start time.Time) []zap.Field {
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("query", loggableQuery(c.Request.URL.RawQuery)),
		zap.String("client_ip", c.ClientIP()),
		zap.String("role", c.GetString(ctxRole)),
		zap.String("request_id", c.GetString("request_id")),
		zap.Duration("latency", time.Since(start)),
	}
	if p, ok := Principal(c); ok {
		fields = append(fields, zap.String("user_id", p.ID.String()))
	}
	return fields
}

// secretQueryParams never reach the logs. Websocket clients pass their JWT as
// ?token=.
var secretQueryParams = []string{"token", "access_token"}

func loggableQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "[unparseable]"
	}
	for _, k := range secretQueryParams {
		if values.Has(k) {
			values.Set(k, "[redacted]")
		}
	}
	return values.Encode()
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
