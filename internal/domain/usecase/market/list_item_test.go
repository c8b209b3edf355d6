package market

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

func TestListItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Allocates the next id", func(t *testing.T) {
		f := newServiceFixture(t, marketFixture())

		item, err := f.service.ListItem(ctx, "bob", 1250, map[string]json.RawMessage{
			"name": json.RawMessage(`"Chair"`),
			"id":   json.RawMessage(`7`),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), item.ID)
		assert.Equal(t, entity.Money(1250), item.Price)
		assert.NotContains(t, item.Attributes, "id")

		stored := f.backing.snapshot()
		require.Len(t, stored[1].Items, 1)
		assert.Equal(t, int64(2), stored[1].Items[0].ID)
		assert.Equal(t, 1, f.backing.saveCount())
	})

	t.Run("First item in an empty market gets id 1", func(t *testing.T) {
		f := newServiceFixture(t, []entity.User{{Username: "bob", Name: "Bob"}})

		item, err := f.service.ListItem(ctx, "bob", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(1), item.ID)
	})

	t.Run("Unknown seller", func(t *testing.T) {
		f := newServiceFixture(t, marketFixture())

		item, err := f.service.ListItem(ctx, "mallory", 100, nil)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Equal(t, 0, f.backing.saveCount())
	})

	t.Run("Negative price", func(t *testing.T) {
		f := newServiceFixture(t, marketFixture())

		_, err := f.service.ListItem(ctx, "bob", -5, nil)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
		assert.Equal(t, 0, f.backing.saveCount())
	})
}
