package metrics

import (
	"context"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/persistence"
)

// InstrumentedStore times every call to the wrapped LedgerStore
type InstrumentedStore struct {
	next    persistence.LedgerStore
	metrics core.Metrics
	clock   core.TimeProvider
}

var _ persistence.LedgerStore = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps next
func NewInstrumentedStore(next persistence.LedgerStore, metrics core.Metrics, clock core.TimeProvider) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: metrics, clock: clock}
}

// Load delegates to the wrapped store and records its latency and outcome
func (s *InstrumentedStore) Load(ctx context.Context) ([]entity.User, error) {
	start := s.clock.Now()
	users, err := s.next.Load(ctx)
	s.metrics.ObserveStoreOperation("load", s.clock.Since(start), err)
	return users, err
}

// Save delegates to the wrapped store and records its latency and outcome
func (s *InstrumentedStore) Save(ctx context.Context, users []entity.User) error {
	start := s.clock.Now()
	err := s.next.Save(ctx, users)
	s.metrics.ObserveStoreOperation("save", s.clock.Since(start), err)
	return err
}
