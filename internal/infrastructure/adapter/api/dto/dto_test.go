package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
)

func TestScalar_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Scalar
	}{
		{name: "integer", input: `12`, want: "12"},
		{name: "decimal", input: `12.50`, want: "12.50"},
		{name: "string", input: `"7.25"`, want: "7.25"},
		{name: "null", input: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scalar
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.want, s)
		})
	}

	var s Scalar
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestRegisterRequest_Decode(t *testing.T) {
	var req RegisterRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Alice","user_name":"alice","balance":15}`), &req))
	assert.Equal(t, "Alice", req.Name)
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "15", req.Balance.String())
}

func TestListItemRequest_AttributeMap(t *testing.T) {
	t.Run("form fields", func(t *testing.T) {
		req := ListItemRequest{Price: "3", Name: "Lamp", Description: "  "}

		attrs, err := req.AttributeMap()
		require.NoError(t, err)
		assert.Equal(t, map[string]json.RawMessage{"name": json.RawMessage(`"Lamp"`)}, attrs)
	})

	t.Run("explicit attributes win", func(t *testing.T) {
		req := ListItemRequest{
			Name:       "Lamp",
			Attributes: map[string]json.RawMessage{"name": json.RawMessage(`"Desk lamp"`), "watts": json.RawMessage(`40`)},
		}

		attrs, err := req.AttributeMap()
		require.NoError(t, err)
		assert.Equal(t, json.RawMessage(`"Desk lamp"`), attrs["name"])
		assert.Equal(t, json.RawMessage(`40`), attrs["watts"])
	})

	t.Run("nothing given", func(t *testing.T) {
		attrs, err := ListItemRequest{Price: "3"}.AttributeMap()
		require.NoError(t, err)
		assert.Nil(t, attrs)
	})
}

func TestNewUserResponse(t *testing.T) {
	user := &entity.User{
		Username: "bob",
		Name:     "Bob",
		Balance:  20_00,
		Transactions: []entity.Transaction{
			{ItemID: 4, Seller: "alice", Buyer: "bob", Price: 5_00},
		},
	}

	resp := NewUserResponse(user)
	assert.Equal(t, "bob", resp.Username)
	assert.Equal(t, entity.Money(20_00), resp.Balance)
	assert.NotNil(t, resp.Items)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, int64(4), resp.Transactions[0].ItemID)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items":[]`)
	assert.Contains(t, string(data), `"balance":20.00`)
}
