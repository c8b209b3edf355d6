package entity

import (
	"encoding/json"
	"testing"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected Money
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"10.", 1000},
			{"1234567.89", 123456789},
			{"0", 0},
			{"1000000000000.00", MaxAmount},
			{" 30 ", 3000},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ParseMoney(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"-1.00", errs.ErrNegativeAmount, "Negative amount"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
			{"1e3", errs.ErrInvalidAmount, "Exponent notation"},
			{"+5", errs.ErrInvalidAmount, "Explicit sign"},
			{"1000000000000.01", errs.ErrInvalidAmount, "Above the maximum amount"},
			{"92233720368547758.07", errs.ErrInvalidAmount, "Max int64 cents"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseMoney(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestMoneyString(t *testing.T) {
	testCases := []struct {
		cents    Money
		expected string
	}{
		{1015, "10.15"},
		{1000, "10.00"},
		{5, "0.05"},
		{0, "0.00"},
		{-250, "-2.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.cents.String())
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	t.Run("Marshal as number", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Balance Money `json:"balance"`
		}{Balance: 13000})
		require.NoError(t, err)
		assert.JSONEq(t, `{"balance": 130.00}`, string(data))
	})

	t.Run("Unmarshal number and string", func(t *testing.T) {
		var v struct {
			A Money `json:"a"`
			B Money `json:"b"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a": 30, "b": "12.5"}`), &v))
		assert.Equal(t, Money(3000), v.A)
		assert.Equal(t, Money(1250), v.B)
	})

	t.Run("Reject negative and null", func(t *testing.T) {
		var m Money
		assert.ErrorIs(t, json.Unmarshal([]byte(`-1`), &m), errs.ErrNegativeAmount)
		assert.ErrorIs(t, m.UnmarshalJSON([]byte(`null`)), errs.ErrInvalidAmount)
	})
}
