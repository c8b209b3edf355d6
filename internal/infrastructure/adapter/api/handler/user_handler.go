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

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	registry  usecase.RegistryUseCase
	catalog   usecase.CatalogUseCase
	market    usecase.MarketUseCase
	validator *market.RequestValidator
	logger    coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	registry usecase.RegistryUseCase,
	catalog usecase.CatalogUseCase,
	marketUseCase usecase.MarketUseCase,
	validator *market.RequestValidator,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		registry:  registry,
		catalog:   catalog,
		market:    marketUseCase,
		validator: validator,
		logger:    logger,
	}
}

// GetUserPage handles the GET /user/:username endpoint
func (h *UserHandler) GetUserPage(c *gin.Context) {
	username := c.Param("username")
	ctx := c.Request.Context()

	user, err := h.catalog.GetUser(ctx, username)
	if err != nil {
		respondError(c, h.logger, "Error getting user", err)
		return
	}

	others, err := h.catalog.ListOthersItems(ctx, username)
	if err != nil {
		respondError(c, h.logger, "Error listing storefront", err)
		return
	}

	c.JSON(http.StatusOK, dto.UserPageResponse{
		User:       dto.NewUserResponse(user),
		UsersItems: others,
	})
}

// ListUserItems handles the GET /user/:username/items endpoint
func (h *UserHandler) ListUserItems(c *gin.Context) {
	username := c.Param("username")

	items, err := h.catalog.ListUserItems(c.Request.Context(), username)
	if err != nil {
		respondError(c, h.logger, "Error listing user items", err)
		return
	}

	c.JSON(http.StatusOK, dto.UserItemsResponse{
		Username: username,
		Items:    items,
	})
}

// Login handles the POST /login endpoint. There are no credentials: a known
// username is enough.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	exists, err := h.registry.UserExists(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, h.logger, "Error checking user existence", err)
		return
	}
	if !exists {
		respondError(c, h.logger, "Login with unknown username", errs.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Username: req.Username})
}

// Register handles the POST /register endpoint
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	balance, err := h.validator.ValidateRegistration(req.Name, req.Username, req.Balance.String())
	if err != nil {
		respondError(c, h.logger, "Invalid registration", err)
		return
	}

	user, err := h.market.RegisterUser(c.Request.Context(), req.Name, req.Username, balance)
	if err != nil {
		respondError(c, h.logger, "Error registering user", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}
