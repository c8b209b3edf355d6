package model

// Item represents an item row. ItemID is the marketplace id and is not the
// primary key, so a corrupt ledger with a repeated id can still round-trip.
type Item struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	ItemID     int64  `gorm:"not null;index"`
	OwnerID    uint64 `gorm:"not null;index"`
	Position   int    `gorm:"not null"`
	Price      int64  `gorm:"not null"`  // Price in cents
	Attributes string `gorm:"type:text"` // JSON object of seller-defined fields
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "items"
}
