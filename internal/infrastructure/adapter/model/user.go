package model

import (
	"time"
)

// User represents the database model for marketplace users. Position keeps
// the stored order of the collection.
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"uniqueIndex;not null;size:255"`
	Name      string    `gorm:"not null;size:255"`
	Balance   int64     `gorm:"not null"` // Balance in cents
	Position  int       `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Items        []Item        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
