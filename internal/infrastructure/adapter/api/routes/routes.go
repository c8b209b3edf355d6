package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything SetupRoutes mounts
type Handlers struct {
	User    *handler.UserHandler
	Market  *handler.MarketHandler
	Health  *handler.HealthHandler
	Metrics http.Handler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers) {
	router.GET("/", handlers.Health.Index)
	router.GET("/healthz", handlers.Health.Health)
	if handlers.Metrics != nil {
		router.GET("/metrics", gin.WrapH(handlers.Metrics))
	}

	router.POST("/login", handlers.User.Login)
	router.POST("/register", handlers.User.Register)
	router.POST("/buy", handlers.Market.Buy)

	userRoutes := router.Group("/user")
	{
		// GET /user/:username
		userRoutes.GET("/:username", handlers.User.GetUserPage)

		// GET /user/:username/items
		userRoutes.GET("/:username/items", handlers.User.ListUserItems)

		// POST /user/:username/items
		userRoutes.POST("/:username/items", handlers.Market.ListItem)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	clock coreport.TimeProvider,
	recorder middleware.RequestRecorder,
	allowedOrigins ...string,
) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger, clock, recorder))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(allowedOrigins...))
}
