package entity

import (
	"time"

	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
)

// Transaction is an immutable record of a completed purchase, kept in the
// buyer's log only
type Transaction struct {
	ItemID int64     `json:"itemId"`
	Seller string    `json:"seller"`
	Buyer  string    `json:"buyer"`
	Price  Money     `json:"price"`
	Date   time.Time `json:"date"`
}

// NewTransaction records the sale of item from seller to buyer at the current time
func NewTransaction(item Item, seller, buyer string, timeProvider coreport.TimeProvider) Transaction {
	return Transaction{
		ItemID: item.ID,
		Seller: seller,
		Buyer:  buyer,
		Price:  item.Price,
		Date:   timeProvider.Now().UTC(),
	}
}
