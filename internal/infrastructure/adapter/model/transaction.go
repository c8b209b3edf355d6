package model

import (
	"time"
)

// Transaction represents one entry of a buyer's purchase log
type Transaction struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement"`
	UserID   uint64    `gorm:"not null;index"`
	Position int       `gorm:"not null"`
	ItemID   int64     `gorm:"not null"`
	Seller   string    `gorm:"not null;size:255"`
	Buyer    string    `gorm:"not null;size:255"`
	Price    int64     `gorm:"not null"` // Price in cents
	Date     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
