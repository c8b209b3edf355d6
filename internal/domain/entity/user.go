package entity

import (
	"strings"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

// User is a marketplace participant. Username is the identity key.
type User struct {
	Username     string        `json:"user_name"`
	Name         string        `json:"name"`
	Balance      Money         `json:"balance"`
	Transactions []Transaction `json:"transactions"`
	Items        []Item        `json:"items"`
}

// NewUser creates a user with empty transaction and item lists
func NewUser(name, username string, balance Money) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errs.ErrInvalidUsername
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.ErrInvalidName
	}
	if balance < 0 {
		return nil, errs.ErrNegativeAmount
	}
	if balance > MaxAmount {
		return nil, errs.ErrBalanceLimit
	}

	return &User{
		Username:     username,
		Name:         name,
		Balance:      balance,
		Transactions: []Transaction{},
		Items:        []Item{},
	}, nil
}

// FindItem returns the position of the item with the given id in the user's items
func (u *User) FindItem(id int64) (int, bool) {
	for i := range u.Items {
		if u.Items[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// CanAfford checks if the user has enough balance for the price
func (u *User) CanAfford(price Money) bool {
	return u.Balance >= price
}

// Debit subtracts the amount from balance if sufficient balance exists
func (u *User) Debit(amount Money) error {
	if amount < 0 {
		return errs.ErrNegativeAmount
	}
	if !u.CanAfford(amount) {
		return errs.ErrInsufficientFunds
	}
	u.Balance -= amount
	return nil
}

// CanReceive checks if crediting amount keeps the balance within MaxAmount
func (u *User) CanReceive(amount Money) bool {
	return amount >= 0 && u.Balance <= MaxAmount-amount
}

// Credit adds the amount to the balance unless that would exceed MaxAmount
func (u *User) Credit(amount Money) error {
	if amount < 0 {
		return errs.ErrNegativeAmount
	}
	if !u.CanReceive(amount) {
		return errs.ErrBalanceLimit
	}
	u.Balance += amount
	return nil
}

// RemoveItem takes the item with the given id out of the user's items
func (u *User) RemoveItem(id int64) (Item, bool) {
	idx, ok := u.FindItem(id)
	if !ok {
		return Item{}, false
	}
	item := u.Items[idx]
	u.Items = append(u.Items[:idx:idx], u.Items[idx+1:]...)
	return item, true
}

// AddItem appends an item to the user's items
func (u *User) AddItem(item Item) {
	u.Items = append(u.Items, item)
}

// RecordTransaction appends to the transaction log. Entries are never edited.
func (u *User) RecordTransaction(txn Transaction) {
	u.Transactions = append(u.Transactions, txn)
}

// Clone returns a deep copy of the user
func (u User) Clone() User {
	clone := u
	clone.Transactions = make([]Transaction, len(u.Transactions))
	copy(clone.Transactions, u.Transactions)
	clone.Items = make([]Item, len(u.Items))
	for i, item := range u.Items {
		clone.Items[i] = item.Clone()
	}
	return clone
}
