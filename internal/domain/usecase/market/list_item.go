package market

import (
	"context"
	"encoding/json"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/registry"
)

// ListItem adds a new item to the seller's inventory under the next free id
func (s *Service) ListItem(ctx context.Context, sellerUsername string, price entity.Money, attributes map[string]json.RawMessage) (*entity.Item, error) {
	var listed entity.Item
	err := s.writer.Submit(ctx, "list_item", func(ctx context.Context) error {
		ledger, err := s.registry.Load(ctx)
		if err != nil {
			return err
		}

		if !ledger.HasUser(sellerUsername) {
			return errs.ErrUserNotFound
		}

		item, err := entity.NewItem(registry.NextItemID(ledger), price, attributes)
		if err != nil {
			return err
		}

		if err := ledger.AttachItem(sellerUsername, item); err != nil {
			return err
		}

		if err := s.save(ctx, "list_item", ledger); err != nil {
			return err
		}

		listed = item.Clone()
		return nil
	})

	if err != nil {
		s.logger.Warn("Item listing failed", map[string]any{
			"seller": sellerUsername,
			"price":  price.String(),
			"error":  err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Item listed", map[string]any{
		"seller":  sellerUsername,
		"item_id": listed.ID,
		"price":   listed.Price.String(),
	})

	return &listed, nil
}
