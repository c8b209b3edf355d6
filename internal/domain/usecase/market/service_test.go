package market

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/registry"
	mockcore "github.com/amirhossein-jamali/peer-market/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/peer-market/mocks/port/persistence"
)

var fixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// memoryBackedStore wires a MockLedgerStore to an in-test slice so every Load
// returns a fresh deep copy and every Save replaces it
type memoryBackedStore struct {
	mu    sync.Mutex
	users []entity.User
	saves int
}

func (m *memoryBackedStore) load(context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUsers(m.users), nil
}

func (m *memoryBackedStore) save(_ context.Context, users []entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = cloneUsers(users)
	m.saves++
	return nil
}

func (m *memoryBackedStore) snapshot() []entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUsers(m.users)
}

func (m *memoryBackedStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func cloneUsers(users []entity.User) []entity.User {
	out := make([]entity.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}

func marketFixture() []entity.User {
	lamp, _ := entity.NewItem(1, 3000, map[string]json.RawMessage{
		"name": json.RawMessage(`"Lamp"`),
	})
	return []entity.User{
		{Username: "alice", Name: "Alice", Balance: 10000, Transactions: []entity.Transaction{}, Items: []entity.Item{lamp}},
		{Username: "bob", Name: "Bob", Balance: 5000, Transactions: []entity.Transaction{}, Items: []entity.Item{}},
	}
}

func newQuietLogger(t *testing.T) *mockcore.MockLogger {
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

type serviceFixture struct {
	service *Service
	store   *mockpersistence.MockLedgerStore
	backing *memoryBackedStore
	metrics *mockcore.MockMetrics
	clock   *mockcore.MockTimeProvider
}

// newServiceFixture builds a Service over a memory-backed mock store holding users
func newServiceFixture(t *testing.T, users []entity.User, opts ...Option) *serviceFixture {
	logger := newQuietLogger(t)
	backing := &memoryBackedStore{users: users}

	store := mockpersistence.NewMockLedgerStore(t)
	store.EXPECT().Load(mock.Anything).RunAndReturn(backing.load).Maybe()
	store.EXPECT().Save(mock.Anything, mock.Anything).RunAndReturn(backing.save).Maybe()

	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(fixedTime).Maybe()

	metrics := mockcore.NewMockMetrics(t)

	svc := NewMarketService(store, registry.NewRegistry(store, logger), clock, logger, metrics, opts...)
	t.Cleanup(svc.Shutdown)

	return &serviceFixture{
		service: svc,
		store:   store,
		backing: backing,
		metrics: metrics,
		clock:   clock,
	}
}
