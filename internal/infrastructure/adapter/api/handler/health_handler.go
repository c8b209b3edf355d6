package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the index and health endpoints
const ServiceName = "peer-market"

// HealthHandler serves the banner and health endpoints
type HealthHandler struct {
	registry usecase.RegistryUseCase
	logger   coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(registry usecase.RegistryUseCase, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		registry: registry,
		logger:   logger,
	}
}

// Index handles the GET / endpoint
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "running",
		Service: ServiceName,
	})
}

// Health handles the GET /healthz endpoint by reading the ledger once
func (h *HealthHandler) Health(c *gin.Context) {
	if _, err := h.registry.AllIDs(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
