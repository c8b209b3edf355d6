package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

// Item is a listing owned by exactly one user. Seller-defined fields such as
// name or description are carried opaquely in Attributes.
type Item struct {
	ID         int64
	Price      Money
	Attributes map[string]json.RawMessage
}

// NewItem creates an item with the given id, price and attributes
func NewItem(id int64, price Money, attributes map[string]json.RawMessage) (Item, error) {
	if id <= 0 {
		return Item{}, errs.ErrInvalidItemID
	}
	if price < 0 {
		return Item{}, errs.ErrNegativeAmount
	}

	item := Item{ID: id, Price: price}
	for k, v := range attributes {
		if k == "id" || k == "price" {
			continue
		}
		if item.Attributes == nil {
			item.Attributes = make(map[string]json.RawMessage, len(attributes))
		}
		item.Attributes[k] = append(json.RawMessage(nil), v...)
	}
	return item, nil
}

// Clone returns a deep copy of the item
func (i Item) Clone() Item {
	clone := Item{ID: i.ID, Price: i.Price}
	if i.Attributes != nil {
		clone.Attributes = make(map[string]json.RawMessage, len(i.Attributes))
		for k, v := range i.Attributes {
			clone.Attributes[k] = append(json.RawMessage(nil), v...)
		}
	}
	return clone
}

// MarshalJSON flattens the attributes next to "id" and "price"
func (i Item) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(i.Attributes)+2)
	for k, v := range i.Attributes {
		fields[k] = v
	}
	fields["id"] = json.RawMessage(strconv.FormatInt(i.ID, 10))
	fields["price"] = json.RawMessage(i.Price.String())
	return json.Marshal(fields)
}

// UnmarshalJSON reads "id" and "price" and keeps every other field as an attribute
func (i *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	rawID, ok := fields["id"]
	if !ok {
		return fmt.Errorf("%w: item has no id", errs.ErrInvalidItemID)
	}
	id, err := strconv.ParseInt(string(bytes.TrimSpace(rawID)), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: %s", errs.ErrInvalidItemID, string(rawID))
	}

	var price Money
	if rawPrice, ok := fields["price"]; ok {
		if err := price.UnmarshalJSON(rawPrice); err != nil {
			return fmt.Errorf("item %d: %w", id, err)
		}
	}

	delete(fields, "id")
	delete(fields, "price")
	if len(fields) == 0 {
		fields = nil
	}

	*i = Item{ID: id, Price: price, Attributes: fields}
	return nil
}
