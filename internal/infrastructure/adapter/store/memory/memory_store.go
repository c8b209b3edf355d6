package memory

import (
	"context"
	"sync"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/persistence"
)

// Store holds the ledger in process memory. Load and Save deep-copy, so
// callers never share slices with the stored snapshot.
type Store struct {
	mu    sync.RWMutex
	users []entity.User
}

var _ persistence.LedgerStore = (*Store)(nil)

// NewStore creates a memory store holding a copy of users
func NewStore(users ...entity.User) *Store {
	return &Store{users: cloneAll(users)}
}

// Load returns a copy of the stored users
func (s *Store) Load(ctx context.Context) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.users), nil
}

// Save replaces the stored users with a copy of users
func (s *Store) Save(ctx context.Context, users []entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := cloneAll(users)

	s.mu.Lock()
	s.users = snapshot
	s.mu.Unlock()
	return nil
}

func cloneAll(users []entity.User) []entity.User {
	out := make([]entity.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
