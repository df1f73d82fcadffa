package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/contextkeys"
)

// DBMiddleware makes the shared *gorm.DB available to every handler through
// the request context.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), db)
		c.Next()
	}
}

// RequestIDMiddleware assigns each request a correlation id, honoring one
// provided by the client.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(string(contextkeys.RequestIDContextKey), requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggingMiddleware emits one structured line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		// request_id and user_id ride on the request context.
		if c.Writer.Status() >= 500 {
			logger.CtxError(c.Request.Context(), "request", fields...)
		} else {
			logger.CtxInfo(c.Request.Context(), "request", fields...)
		}
	}
}

// CORSMiddleware allows the frontend origin. The API serves a browser client
// on a different port in development.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
