package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// DefaultBalance is the balance given to a user registered without one
const DefaultBalance Money = 100_00

// MaxAmount is the largest amount a price or balance may hold (1 trillion).
// Adding two amounts at the cap still fits in an int64.
const MaxAmount Money = 1_000_000_000_000_00

// Money is a non-negative amount stored in cents to avoid floating point drift.
// On the wire it is a plain JSON number with two decimal places.
type Money int64

// ParseMoney validates a decimal string and converts it to cents.
// Amounts above MaxAmount are rejected.
// "10" becomes 1000, "10.5" becomes 1050, "10.55" becomes 1055; more than two
// decimal places and negative values are rejected.
func ParseMoney(amount string) (Money, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string

	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	for _, r := range integerValue {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a decimal number", errs.ErrInvalidAmount, amount)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if Money(value) > MaxAmount {
		return 0, fmt.Errorf("%w: maximum is %s", errs.ErrInvalidAmount, MaxAmount)
	}

	return Money(value), nil
}

// Cents returns the raw amount in cents
func (m Money) Cents() int64 {
	return int64(m)
}

// String formats the amount with exactly two decimal places: 1015 becomes "10.15"
func (m Money) String() string {
	cents := int64(m)
	isNegative := cents < 0
	if isNegative {
		cents = -cents
	}

	amountStr := strconv.FormatInt(cents, 10)
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	formatted := amountStr[:decimalPos] + "." + amountStr[decimalPos:]
	if isNegative {
		return "-" + formatted
	}
	return formatted
}

// MarshalJSON writes the amount as a JSON number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "null" {
		return fmt.Errorf("%w: null", errs.ErrInvalidAmount)
	}

	value, err := ParseMoney(raw)
	if err != nil {
		return err
	}

	*m = value
	return nil
}
