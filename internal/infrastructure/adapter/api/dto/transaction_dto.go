package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
)

// BuyRequest represents the API request for purchasing an item
type BuyRequest struct {
	Username string `form:"user_name" json:"user_name" binding:"required"`
	ItemID   Scalar `form:"id" json:"id" binding:"required"`
}

// TransactionResponse represents one completed purchase
type TransactionResponse struct {
	ItemID int64        `json:"itemId"`
	Seller string       `json:"seller"`
	Buyer  string       `json:"buyer"`
	Price  entity.Money `json:"price"`
	Date   time.Time    `json:"date"`
}

// PurchaseResponse represents the API response for a processed purchase
type PurchaseResponse struct {
	Success     bool                `json:"success"`
	Transaction TransactionResponse `json:"transaction"`
}

// ListItemRequest represents the API request for putting an item up for sale.
// Name and description are the form-friendly attributes; JSON clients may send
// any attributes they like.
type ListItemRequest struct {
	Price       Scalar                     `form:"price" json:"price" binding:"required"`
	Name        string                     `form:"name" json:"name"`
	Description string                     `form:"description" json:"description"`
	Attributes  map[string]json.RawMessage `form:"-" json:"attributes"`
}

// NewTransactionResponse maps a domain transaction to its API form
func NewTransactionResponse(txn entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ItemID: txn.ItemID,
		Seller: txn.Seller,
		Buyer:  txn.Buyer,
		Price:  txn.Price,
		Date:   txn.Date,
	}
}

// AttributeMap merges name and description into the free-form attributes.
// Values in Attributes win over the form fields.
func (r ListItemRequest) AttributeMap() (map[string]json.RawMessage, error) {
	attributes := make(map[string]json.RawMessage, len(r.Attributes)+2)
	for key, value := range map[string]string{"name": r.Name, "description": r.Description} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		attributes[key] = encoded
	}

	for key, value := range r.Attributes {
		attributes[key] = value
	}

	if len(attributes) == 0 {
		return nil, nil
	}
	return attributes, nil
}
