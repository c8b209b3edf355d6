package entity

import (
	"sort"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

// Ledger is one consistent in-memory snapshot of the whole user collection.
// It indexes users by username and item ids by owner; both indexes are
// rebuilt whenever a Ledger is constructed from a fresh load.
type Ledger struct {
	users  []User
	byName map[string]int
	owners map[int64][]int
}

// NewLedger takes ownership of users and builds the lookup indexes
func NewLedger(users []User) *Ledger {
	l := &Ledger{
		users:  users,
		byName: make(map[string]int, len(users)),
		owners: make(map[int64][]int),
	}

	for i := range l.users {
		u := &l.users[i]
		if u.Transactions == nil {
			u.Transactions = []Transaction{}
		}
		if u.Items == nil {
			u.Items = []Item{}
		}
		if _, dup := l.byName[u.Username]; !dup {
			l.byName[u.Username] = i
		}
		for _, item := range u.Items {
			l.owners[item.ID] = append(l.owners[item.ID], i)
		}
	}

	return l
}

// Users returns the collection in stored order. Callers must not keep the
// slice across a save.
func (l *Ledger) Users() []User {
	return l.users
}

// Len returns the number of users
func (l *Ledger) Len() int {
	return len(l.users)
}

// User looks up a user by username
func (l *Ledger) User(username string) (*User, bool) {
	idx, ok := l.byName[username]
	if !ok {
		return nil, false
	}
	return &l.users[idx], true
}

// HasUser reports whether a user with the username exists
func (l *Ledger) HasUser(username string) bool {
	_, ok := l.byName[username]
	return ok
}

// HasItem reports whether any user owns an item with the id
func (l *Ledger) HasItem(id int64) bool {
	return len(l.owners[id]) > 0
}

// ItemIDs returns the set of every item id in the collection
func (l *Ledger) ItemIDs() map[int64]struct{} {
	ids := make(map[int64]struct{}, len(l.owners))
	for id, owners := range l.owners {
		if len(owners) > 0 {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// MaxItemID returns the largest item id in use, or 0 for an empty collection
func (l *Ledger) MaxItemID() int64 {
	var maxID int64
	for id, owners := range l.owners {
		if len(owners) > 0 && id > maxID {
			maxID = id
		}
	}
	return maxID
}

// Owner returns the user holding the item. If the id is held by several users
// the first one in stored order is returned together with an IntegrityError.
func (l *Ledger) Owner(id int64) (*User, error) {
	owners := l.owners[id]
	switch len(owners) {
	case 0:
		return nil, errs.ErrUnknownItem
	case 1:
		return &l.users[owners[0]], nil
	}

	sorted := append([]int(nil), owners...)
	sort.Ints(sorted)
	names := make([]string, len(sorted))
	for i, idx := range sorted {
		names[i] = l.users[idx].Username
	}
	return &l.users[sorted[0]], &errs.IntegrityError{ItemID: id, Owners: names}
}

// AddUser appends a user. The caller must have checked the username is free.
func (l *Ledger) AddUser(u User) *User {
	if u.Transactions == nil {
		u.Transactions = []Transaction{}
	}
	if u.Items == nil {
		u.Items = []Item{}
	}

	l.users = append(l.users, u)
	idx := len(l.users) - 1
	l.byName[u.Username] = idx
	for _, item := range u.Items {
		l.owners[item.ID] = append(l.owners[item.ID], idx)
	}
	return &l.users[idx]
}

// AttachItem gives an item to an existing user and indexes it
func (l *Ledger) AttachItem(username string, item Item) error {
	idx, ok := l.byName[username]
	if !ok {
		return errs.ErrUserNotFound
	}
	l.users[idx].AddItem(item)
	l.owners[item.ID] = append(l.owners[item.ID], idx)
	return nil
}

// MoveItem transfers an item from one user to another, keeping it unchanged
func (l *Ledger) MoveItem(id int64, from, to string) (Item, error) {
	fromIdx, ok := l.byName[from]
	if !ok {
		return Item{}, errs.ErrUserNotFound
	}
	toIdx, ok := l.byName[to]
	if !ok {
		return Item{}, errs.ErrUserNotFound
	}

	item, ok := l.users[fromIdx].RemoveItem(id)
	if !ok {
		return Item{}, errs.ErrUnknownItem
	}
	l.users[toIdx].AddItem(item)

	owners := l.owners[id]
	updated := make([]int, 0, len(owners))
	for _, idx := range owners {
		if idx != fromIdx {
			updated = append(updated, idx)
		}
	}
	l.owners[id] = append(updated, toIdx)

	return item, nil
}
