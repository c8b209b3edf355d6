package catalog

import (
	"context"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/registry"
)

// Catalog builds storefront views from the ledger
type Catalog struct {
	registry *registry.Registry
	logger   coreport.Logger
}

var _ usecase.CatalogUseCase = (*Catalog)(nil)

// NewCatalog creates a new catalog
func NewCatalog(registry *registry.Registry, logger coreport.Logger) *Catalog {
	return &Catalog{
		registry: registry,
		logger:   logger,
	}
}

// ListOthersItems returns every user except excludingUsername with their items.
// An unknown excludingUsername simply excludes nobody.
func (c *Catalog) ListOthersItems(ctx context.Context, excludingUsername string) ([]usecase.UserItems, error) {
	ledger, err := c.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	listing := make([]usecase.UserItems, 0, ledger.Len())
	for _, u := range ledger.Users() {
		if u.Username == excludingUsername {
			continue
		}
		listing = append(listing, usecase.UserItems{
			Username: u.Username,
			Items:    u.Items,
		})
	}

	return listing, nil
}

// ListUserItems returns the items owned by username
func (c *Catalog) ListUserItems(ctx context.Context, username string) ([]entity.Item, error) {
	user, err := c.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Items, nil
}

// GetUser returns the user with the given username
func (c *Catalog) GetUser(ctx context.Context, username string) (*entity.User, error) {
	ledger, err := c.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := ledger.User(username)
	if !ok {
		c.logger.Debug("User not found", map[string]any{
			"username": username,
		})
		return nil, errs.ErrUserNotFound
	}

	return user, nil
}
