package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places an amount may carry.
const MoneyScale = 2

// Money is an immutable amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney validates and builds a Money value. The currency is upper-cased.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, NewValidationError("amount", "amount cannot be negative")
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return Money{}, NewValidationError("amount", "amount cannot have more than 2 decimal places")
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return Money{}, NewValidationError("currency", "currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: strings.ToUpper(currency),
	}, nil
}

// NewUSD builds a Money value in the default currency.
func NewUSD(amount decimal.Decimal) (Money, error) {
	return NewMoney(amount, DefaultCurrency)
}

// Amount returns the amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether this is the zero value (no currency assigned).
func (m Money) IsZero() bool {
	return m.currency == ""
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, NewInvalidOperationError(
			fmt.Sprintf("cannot add different currencies: %s and %s", m.currency, other.currency))
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract removes other from m. The result must not be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, NewInvalidOperationError(
			fmt.Sprintf("cannot subtract different currencies: %s and %s", m.currency, other.currency))
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

// Multiply scales the amount by a non-negative quantity.
func (m Money) Multiply(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, NewValidationError("quantity", "multiplication factor cannot be negative")
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(qty))), m.currency)
}

// Equal compares amount and currency; 1.0 equals 1.00.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders e.g. "129.99 USD".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
