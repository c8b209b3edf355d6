package registry

import (
	"context"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/usecase"
)

// Registry enforces global uniqueness of usernames and item ids.
// It recomputes its indexes from the store on every call.
type Registry struct {
	store  persistence.LedgerStore
	logger coreport.Logger
}

var _ usecase.RegistryUseCase = (*Registry)(nil)

// NewRegistry creates a new identity registry over the given store
func NewRegistry(store persistence.LedgerStore, logger coreport.Logger) *Registry {
	return &Registry{
		store:  store,
		logger: logger,
	}
}

// Load reads the current collection and indexes it. All checks of a single
// operation should run against one Load result.
func (r *Registry) Load(ctx context.Context) (*entity.Ledger, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Error("Failed to load ledger", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	ledger := entity.NewLedger(users)
	r.logger.Debug("Ledger loaded", map[string]any{
		"users": ledger.Len(),
		"items": len(ledger.ItemIDs()),
	})
	return ledger, nil
}

// UserExists checks if a user exists with the given username
func (r *Registry) UserExists(ctx context.Context, username string) (bool, error) {
	ledger, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	return ledger.HasUser(username), nil
}

// IDExists checks if an item with the given id exists anywhere in the ledger
func (r *Registry) IDExists(ctx context.Context, itemID int64) (bool, error) {
	ledger, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	return ledger.HasItem(itemID), nil
}

// AllIDs returns the set of item ids in use
func (r *Registry) AllIDs(ctx context.Context) (map[int64]struct{}, error) {
	ledger, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.ItemIDs(), nil
}

// NextItemID allocates an id one above the largest in use
func NextItemID(ledger *entity.Ledger) int64 {
	return ledger.MaxItemID() + 1
}
