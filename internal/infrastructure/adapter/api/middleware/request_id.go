package middleware

import (
	applog "github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id in requests and responses
const RequestIDHeader = "X-Request-ID"

// RequestID middleware reuses the caller's X-Request-ID or generates one, and
// stores it in the request context for the logger
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(applog.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
