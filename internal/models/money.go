package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an immutable, currency-aware amount. The amount is always kept at
// two decimal places (half-up rounding) and the currency code is normalized
// to uppercase. Every operation returns a new value.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney creates a Money value, rounding the amount to two decimal places
// and normalizing the currency code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if strings.TrimSpace(currency) == "" {
		return Money{}, NewValidationError("currency cannot be empty")
	}
	return Money{
		Amount:   amount.Round(2),
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}, nil
}

// NewMoneyFromFloat creates a Money value from a float amount, e.g. one
// parsed from a JSON request body.
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// ZeroBRL returns a zero amount in BRL, the store's default currency.
func ZeroBRL() Money {
	return Money{Amount: decimal.Zero.Round(2), Currency: "BRL"}
}

// Add returns the sum of the two amounts. Both must share the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount).Round(2), Currency: m.Currency}, nil
}

// Subtract returns the difference of the two amounts. Both must share the
// same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(other.Amount).Round(2), Currency: m.Currency}, nil
}

// Multiply scales the amount by an arbitrary factor, re-rounding to two
// decimal places.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor).Round(2), Currency: m.Currency}
}

// MultiplyInt scales the amount by an integer factor, e.g. an item quantity.
func (m Money) MultiplyInt(factor int) Money {
	return m.Multiply(decimal.NewFromInt(int64(factor)))
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// IsGreaterThan compares two amounts of the same currency.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.Amount.GreaterThan(other.Amount), nil
}

// IsLessThan compares two amounts of the same currency.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.Amount.LessThan(other.Amount), nil
}

// Equals reports whether both values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}

func (m Money) assertSameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return NewValidationError("cannot operate on different currencies: %s and %s", m.Currency, other.Currency)
	}
	return nil
}
