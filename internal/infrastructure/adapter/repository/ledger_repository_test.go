package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/time"
)

// newTestRepository connects to the PostgreSQL instance named by TEST_DB_*
// variables and skips the test when none is configured
func newTestRepository(t *testing.T) *LedgerRepository {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping PostgreSQL tests")
	}

	cfg := &database.Config{
		Host:          host,
		Port:          database.ParsePort(envOr("TEST_DB_PORT", "5432")),
		Username:      envOr("TEST_DB_USERNAME", "postgres"),
		Password:      os.Getenv("TEST_DB_PASSWORD"),
		Database:      envOr("TEST_DB_NAME", "peer_market_test"),
		SSLMode:       "disable",
		MaxOpenConns:  5,
		MaxIdleConns:  2,
		QueryTimeout:  5 * time.Second,
		LogLevel:      "silent",
		RetryAttempts: 1,
	}

	log := logger.NewNoopLogger()
	manager := database.NewManager(cfg, log, timeadapter.NewRealTimeProvider())

	ctx := context.Background()
	_, err := manager.Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	require.NoError(t, manager.Migrate(ctx))

	repo := NewLedgerRepository(manager.DB(), log)
	require.NoError(t, repo.Save(ctx, nil))
	return repo
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestLedgerRepository_SaveAndLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	users, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Save(ctx, sampleLedger()))

	users, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleLedger(), users)
}

func TestLedgerRepository_SaveReplacesEverything(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleLedger()))

	replacement := []entity.User{{
		Username: "carol", Name: "Carol", Balance: 10000,
		Items: []entity.Item{}, Transactions: []entity.Transaction{},
	}}
	require.NoError(t, repo.Save(ctx, replacement))

	users, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, users)
}
