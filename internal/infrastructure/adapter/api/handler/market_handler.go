package handler

import (
	"net/http"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/market"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// MarketHandler handles purchase and listing requests
type MarketHandler struct {
	market    usecase.MarketUseCase
	validator *market.RequestValidator
	logger    coreport.Logger
}

// NewMarketHandler creates a new market handler instance
func NewMarketHandler(
	marketUseCase usecase.MarketUseCase,
	validator *market.RequestValidator,
	logger coreport.Logger,
) *MarketHandler {
	return &MarketHandler{
		market:    marketUseCase,
		validator: validator,
		logger:    logger,
	}
}

// Buy handles the POST /buy endpoint
func (h *MarketHandler) Buy(c *gin.Context) {
	var req dto.BuyRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	itemID, err := h.validator.ValidatePurchase(req.Username, req.ItemID.String())
	if err != nil {
		respondError(c, h.logger, "Invalid purchase request", err)
		return
	}

	txn, err := h.market.BuyItem(c.Request.Context(), req.Username, itemID)
	if err != nil {
		respondError(c, h.logger, "Purchase failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.PurchaseResponse{
		Success:     true,
		Transaction: dto.NewTransactionResponse(*txn),
	})
}

// ListItem handles the POST /user/:username/items endpoint
func (h *MarketHandler) ListItem(c *gin.Context) {
	username := c.Param("username")

	var req dto.ListItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	price, err := h.validator.ValidateListing(username, req.Price.String())
	if err != nil {
		respondError(c, h.logger, "Invalid listing", err)
		return
	}

	attributes, err := req.AttributeMap()
	if err != nil {
		respondError(c, h.logger, "Invalid listing attributes", errs.ErrInvalidRequest)
		return
	}

	item, err := h.market.ListItem(c.Request.Context(), username, price, attributes)
	if err != nil {
		respondError(c, h.logger, "Error listing item", err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
