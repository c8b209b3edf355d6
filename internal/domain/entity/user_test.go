package entity

import (
	"encoding/json"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/peer-market/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser("Alice", "alice", DefaultBalance)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, Money(10000), user.Balance)
		assert.NotNil(t, user.Transactions)
		assert.Empty(t, user.Transactions)
		assert.NotNil(t, user.Items)
	})

	t.Run("Zero balance is allowed", func(t *testing.T) {
		user, err := NewUser("Bob", "bob", 0)
		require.NoError(t, err)
		assert.Equal(t, Money(0), user.Balance)
	})

	t.Run("Invalid fields", func(t *testing.T) {
		_, err := NewUser("Alice", "  ", 0)
		assert.ErrorIs(t, err, errs.ErrInvalidUsername)

		_, err = NewUser("", "alice", 0)
		assert.ErrorIs(t, err, errs.ErrInvalidName)

		_, err = NewUser("Alice", "alice", -1)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestUserDebitCredit(t *testing.T) {
	user, _ := NewUser("Alice", "alice", 5000)

	require.NoError(t, user.Debit(5000))
	assert.Equal(t, Money(0), user.Balance)

	assert.ErrorIs(t, user.Debit(1), errs.ErrInsufficientFunds)
	assert.Equal(t, Money(0), user.Balance)

	require.NoError(t, user.Credit(3000))
	assert.Equal(t, Money(3000), user.Balance)

	assert.ErrorIs(t, user.Credit(-1), errs.ErrNegativeAmount)
}

func TestUserCreditLimit(t *testing.T) {
	user, err := NewUser("Alice", "alice", MaxAmount-1000)
	require.NoError(t, err)

	assert.True(t, user.CanReceive(1000))
	assert.False(t, user.CanReceive(1001))

	assert.ErrorIs(t, user.Credit(1001), errs.ErrBalanceLimit)
	assert.Equal(t, MaxAmount-1000, user.Balance)

	require.NoError(t, user.Credit(1000))
	assert.Equal(t, MaxAmount, user.Balance)
	assert.GreaterOrEqual(t, user.Balance, Money(0))

	_, err = NewUser("Bob", "bob", MaxAmount+1)
	assert.ErrorIs(t, err, errs.ErrBalanceLimit)
}

func TestUserItems(t *testing.T) {
	user, _ := NewUser("Alice", "alice", 0)
	user.AddItem(Item{ID: 1, Price: 100})
	user.AddItem(Item{ID: 2, Price: 200})
	user.AddItem(Item{ID: 3, Price: 300})

	snapshot := user.Items

	item, ok := user.RemoveItem(2)
	require.True(t, ok)
	assert.Equal(t, int64(2), item.ID)
	assert.Len(t, user.Items, 2)
	assert.Equal(t, int64(2), snapshot[1].ID, "removal must not rewrite the previous backing array")

	_, ok = user.RemoveItem(2)
	assert.False(t, ok)

	idx, ok := user.FindItem(3)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestUserClone(t *testing.T) {
	user, _ := NewUser("Alice", "alice", 100)
	user.AddItem(Item{ID: 1, Price: 100})

	clone := user.Clone()
	clone.Items[0].Price = 999
	clone.Balance = 0

	assert.Equal(t, Money(100), user.Items[0].Price)
	assert.Equal(t, Money(100), user.Balance)
}

func TestUserJSONFieldNames(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Once()

	user, _ := NewUser("Bob", "bob", 2000)
	user.RecordTransaction(NewTransaction(Item{ID: 1, Price: 3000}, "alice", "bob", mockTime))

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"user_name": "bob",
		"name": "Bob",
		"balance": 20.00,
		"transactions": [{"itemId": 1, "seller": "alice", "buyer": "bob", "price": 30.00, "date": "2023-01-01T12:00:00Z"}],
		"items": []
	}`, string(data))
}
