package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/model"
)

func sampleLedger() []entity.User {
	return []entity.User{
		{
			Username: "alice",
			Name:     "Alice",
			Balance:  13000,
			Items: []entity.Item{
				{ID: 4, Price: 100, Attributes: map[string]json.RawMessage{"name": json.RawMessage(`"Mug"`)}},
				{ID: 2, Price: 2500},
			},
			Transactions: []entity.Transaction{},
		},
		{
			Username: "bob",
			Name:     "Bob",
			Balance:  2000,
			Items:    []entity.Item{{ID: 1, Price: 3000}},
			Transactions: []entity.Transaction{{
				ItemID: 1, Seller: "alice", Buyer: "bob", Price: 3000,
				Date: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			}},
		},
	}
}

func TestUsersToModels(t *testing.T) {
	rows, err := usersToModels(sampleLedger())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, 1, rows[1].Position)
	assert.Equal(t, int64(13000), rows[0].Balance)

	require.Len(t, rows[0].Items, 2)
	assert.Equal(t, model.Item{ItemID: 4, Position: 0, Price: 100, Attributes: `{"name":"Mug"}`}, rows[0].Items[0])
	assert.Equal(t, "", rows[0].Items[1].Attributes)

	require.Len(t, rows[1].Transactions, 1)
	assert.Equal(t, "alice", rows[1].Transactions[0].Seller)
}

func TestModelsRoundTrip(t *testing.T) {
	original := sampleLedger()

	rows, err := usersToModels(original)
	require.NoError(t, err)

	users, err := modelsToUsers(rows)
	require.NoError(t, err)
	assert.Equal(t, original, users)
}

func TestModelsToUsers_CorruptAttributes(t *testing.T) {
	_, err := modelsToUsers([]model.User{{
		Username: "alice",
		Items:    []model.Item{{ItemID: 1, Attributes: "{not json"}},
	}})

	assert.ErrorContains(t, err, "corrupt item attributes")
}
