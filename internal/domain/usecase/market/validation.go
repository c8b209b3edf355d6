package market

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

// RequestValidator checks raw boundary input before it reaches the engine
type RequestValidator struct{}

// NewRequestValidator creates a new RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// ValidateRegistration checks name and username are non-empty and parses the
// optional balance. An empty balance string yields nil ("not provided").
func (v *RequestValidator) ValidateRegistration(name, username, balance string) (*entity.Money, error) {
	if err := v.validateUsername(username); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.ErrInvalidName
	}

	if strings.TrimSpace(balance) == "" {
		return nil, nil
	}

	amount, err := entity.ParseMoney(balance)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// ValidatePurchase checks the buyer username and parses the item id
func (v *RequestValidator) ValidatePurchase(username, itemID string) (int64, error) {
	if err := v.validateUsername(username); err != nil {
		return 0, err
	}
	return v.ParseItemID(itemID)
}

// ValidateListing parses the asking price of a new item
func (v *RequestValidator) ValidateListing(username, price string) (entity.Money, error) {
	if err := v.validateUsername(username); err != nil {
		return 0, err
	}
	return entity.ParseMoney(price)
}

// ParseItemID parses a positive integer item id
func (v *RequestValidator) ParseItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidItemID, raw)
	}
	if id <= 0 {
		return 0, errs.ErrInvalidItemID
	}
	return id, nil
}

// validateUsername checks that the username is not blank
func (v *RequestValidator) validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errs.ErrInvalidUsername
	}
	return nil
}
