package usecase

import (
	"context"
	"encoding/json"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
)

// UserItems is one storefront entry: a user and the items they currently own
type UserItems struct {
	Username string        `json:"user_name"`
	Items    []entity.Item `json:"items"`
}

// RegistryUseCase answers identity and uniqueness questions against the latest
// persisted state. Every call reloads the store; nothing is cached.
type RegistryUseCase interface {
	// UserExists checks if any user has the given username
	UserExists(ctx context.Context, username string) (bool, error)

	// IDExists checks if any user's items contain an item with the given id
	IDExists(ctx context.Context, itemID int64) (bool, error)

	// AllIDs returns every item id in use across all users
	AllIDs(ctx context.Context) (map[int64]struct{}, error)
}

// CatalogUseCase produces read-only, display-oriented views of the ledger
type CatalogUseCase interface {
	// ListOthersItems returns one entry per user other than excludingUsername,
	// in stored order
	ListOthersItems(ctx context.Context, excludingUsername string) ([]UserItems, error)

	// ListUserItems returns the items owned by one user
	ListUserItems(ctx context.Context, username string) ([]entity.Item, error)

	// GetUser returns one user or ErrUserNotFound
	GetUser(ctx context.Context, username string) (*entity.User, error)
}

// MarketUseCase executes the state-changing operations of the marketplace.
// Each call is one load → validate → mutate → save cycle.
type MarketUseCase interface {
	// RegisterUser creates a user. A nil balance means "not provided" and the
	// default balance is used; a zero balance is kept as zero.
	RegisterUser(ctx context.Context, name, username string, balance *entity.Money) (*entity.User, error)

	// BuyItem moves an item from its owner to the buyer and transfers the price
	BuyItem(ctx context.Context, buyerUsername string, itemID int64) (*entity.Transaction, error)

	// ListItem puts a new item up for sale under a freshly allocated id
	ListItem(ctx context.Context, sellerUsername string, price entity.Money, attributes map[string]json.RawMessage) (*entity.Item, error)
}
