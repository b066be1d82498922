package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/proposalgen/proposal-backend/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger присваивает запросу ID и пишет строку лога по завершении.
// Успешные запросы логируются на уровне debug, ошибки на warn.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := logger.Log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"size":       c.Writer.Size(),
			"duration":   time.Since(start).String(),
			"ip":         c.ClientIP(),
		})
		if userID, ok := c.Get(ContextUserIDKey); ok {
			entry = entry.WithField("user_id", userID)
		}

		if status >= 400 {
			entry.Warn("http request")
			return
		}
		entry.Debug("http request")
	}
}
