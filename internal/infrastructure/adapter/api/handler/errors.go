package handler

import (
	"context"
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/dto"
	applog "github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/logger"
	"github.com/gin-gonic/gin"
)

// loggableError is implemented by domain errors that carry structured fields
type loggableError interface {
	LogFields() map[string]any
}

// StatusCode maps domain errors to HTTP status codes
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errs.IsConflictError(err), errors.Is(err, errs.ErrSelfPurchase):
		return http.StatusConflict
	case errors.Is(err, errs.ErrBalanceLimit):
		return http.StatusUnprocessableEntity
	case errs.IsInvalidInputError(err),
		errors.Is(err, errs.ErrInvalidAmount),
		errors.Is(err, errs.ErrNegativeAmount):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrWriterClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for err and logs it. Client errors
// are logged at warn level with their message returned to the caller; server
// errors are logged at error level and their details stay in the log.
func respondError(c *gin.Context, logger coreport.Logger, message string, err error) {
	status := StatusCode(err)

	fields := map[string]any{
		"error":  err.Error(),
		"status": status,
		"path":   c.FullPath(),
	}
	var detailed loggableError
	if errors.As(err, &detailed) {
		for k, v := range detailed.LogFields() {
			fields[k] = v
		}
	}
	if requestID := applog.RequestIDFromContext(c.Request.Context()); requestID != "" {
		fields["request_id"] = requestID
	}

	responseMessage := err.Error()
	switch {
	case status == http.StatusServiceUnavailable:
		logger.Warn(message, fields)
		responseMessage = "Service is shutting down"
	case status >= http.StatusInternalServerError:
		logger.Error(message, fields)
		responseMessage = "Internal server error"
	default:
		logger.Warn(message, fields)
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: responseMessage,
	})
}

// respondBindError reports a request body that could not be parsed
func respondBindError(c *gin.Context, logger coreport.Logger, err error) {
	logger.Warn("Invalid request format", map[string]any{
		"error": err.Error(),
		"path":  c.FullPath(),
	})
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrInvalidRequest),
		Message: "Invalid request format: " + err.Error(),
	})
}
