package middleware

import (
	"autolot/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDMiddleware tags every request with an id, echoes it in the
// X-Request-ID response header and scopes the request logger to it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Set("logger", utils.GetLogger().With(zap.String("requestId", requestID)))
		c.Next()
	}
}
