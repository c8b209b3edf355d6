package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/catalog"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/market"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/registry"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/store/file"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/store/memory"
	timeProvider "github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	defaultBalance, err := entity.ParseMoney(cfg.Market.DefaultBalance)
	if err != nil {
		log.Fatalf("Invalid market.defaultBalance %q: %v", cfg.Market.DefaultBalance, err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger, err := logger.NewZapLogger(logger.Options{
		Production:  cfg.IsProduction() || cfg.Logger.Format == "json",
		Level:       cfg.Logger.Level,
		OutputPaths: []string{cfg.Logger.Output},
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	promMetrics := metrics.NewPrometheus(true)

	// Open the ledger store
	baseStore, closeStore, err := openStore(context.Background(), cfg, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to open ledger store", map[string]any{
			"driver": cfg.Store.Driver,
			"error":  err.Error(),
		})
		_ = appLogger.Flush()
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Error("Failed to close ledger store", map[string]any{
				"error": err.Error(),
			})
		}
	}()
	store := metrics.NewInstrumentedStore(baseStore, promMetrics, tp)

	// Initialize use cases
	identityRegistry := registry.NewRegistry(store, appLogger)
	storefront := catalog.NewCatalog(identityRegistry, appLogger)
	writer := market.NewLedgerWriter(appLogger, cfg.Market.WriteQueueSize)
	marketService := market.NewMarketService(
		store,
		identityRegistry,
		tp,
		appLogger,
		promMetrics,
		market.WithDefaultBalance(defaultBalance),
		market.WithWriter(writer),
	)

	// Seed an empty ledger
	if cfg.Store.SeedPath != "" {
		if err := seedLedger(context.Background(), marketService, cfg.Store.SeedPath, appLogger); err != nil {
			appLogger.Error("Failed to seed ledger", map[string]any{
				"seed_path": cfg.Store.SeedPath,
				"error":     err.Error(),
			})
			marketService.Shutdown()
			_ = appLogger.Flush()
			os.Exit(1)
		}
	}

	// Initialize API handlers
	validator := market.NewRequestValidator()
	handlers := routes.Handlers{
		User:    handler.NewUserHandler(identityRegistry, storefront, marketService, validator, appLogger),
		Market:  handler.NewMarketHandler(marketService, validator, appLogger),
		Health:  handler.NewHealthHandler(identityRegistry, appLogger),
		Metrics: promMetrics.Handler(),
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, promMetrics, cfg.Server.CORSOrigins...)
	routes.SetupRoutes(router, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":  server.Addr,
			"env":   cfg.Environment,
			"store": cfg.Store.Driver,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", map[string]any{
			"signal": sig.String(),
		})
	case err := <-serverErr:
		appLogger.Error("Server stopped unexpectedly", map[string]any{
			"error": err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests first, then drain queued mutations
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Draining ledger writer...", nil)
	marketService.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

// openStore builds the ledger store selected by store.driver and returns the
// function that releases it
func openStore(
	ctx context.Context,
	cfg *config.Config,
	appLogger coreport.Logger,
	tp coreport.TimeProvider,
) (persistence.LedgerStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case config.StoreDriverFile:
		store, err := file.NewStore(cfg.Store.FilePath, appLogger)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.StoreDriverPostgres:
		dbManager := database.NewManager(database.FromAppConfig(cfg.Database, cfg.Database.LogLevel), appLogger, tp)
		db, err := dbManager.Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := dbManager.Migrate(ctx); err != nil {
			_ = dbManager.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return repository.NewLedgerRepository(db, appLogger), dbManager.Close, nil

	case config.StoreDriverMemory:
		appLogger.Warn("Using in-memory ledger; state is lost on exit", nil)
		return memory.NewStore(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// seedLedger writes the seed file into an empty ledger
func seedLedger(ctx context.Context, service *market.Service, path string, appLogger coreport.Logger) error {
	users, err := file.LoadSeed(path)
	if err != nil {
		return err
	}

	seeded, err := service.Seed(ctx, users)
	if err != nil {
		return err
	}

	appLogger.Info("Seed file processed", map[string]any{
		"seed_path": path,
		"seeded":    seeded,
	})
	return nil
}
