package middleware

import (
	"time"

	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	applog "github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/logger"
	"github.com/gin-gonic/gin"
)

// UnmatchedRoute labels requests that hit no registered route
const UnmatchedRoute = "unmatched"

// RequestRecorder receives one observation per served request
type RequestRecorder interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// Logger middleware logs incoming requests and their responses, and reports
// them to recorder when one is given
func Logger(logger coreport.Logger, clock coreport.TimeProvider, recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := clock.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		ip := c.ClientIP()

		c.Next()

		latency := clock.Since(start)
		statusCode := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		if recorder != nil {
			recorder.ObserveHTTPRequest(method, route, statusCode, latency)
		}

		fields := map[string]any{
			"method":      method,
			"path":        path,
			"route":       route,
			"status":      statusCode,
			"latency_ms":  latency.Milliseconds(),
			"ip":          ip,
			"request_id":  applog.RequestIDFromContext(c.Request.Context()),
			"user_agent":  c.Request.UserAgent(),
			"status_text": statusText(statusCode),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		if statusCode >= 500 {
			logger.Warn("Request failed", fields)
			return
		}
		logger.Info("Request processed", fields)
	}
}

// statusText returns the text for the HTTP status code
func statusText(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "Informational"
	case code >= 200 && code < 300:
		return "Success"
	case code >= 300 && code < 400:
		return "Redirect"
	case code >= 400 && code < 500:
		return "Client Error"
	default:
		return "Server Error"
	}
}
