package valueobjects

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when an amount arrives without a currency code.
const DefaultCurrency = "NGN"

// Money is a decimal amount in a single ISO 4217 currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{
		amount:   amount.Round(2),
		currency: currency,
	}
}

// ParseMoney parses a decimal string such as "10000" or "2500.50".
func ParseMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return NewMoney(d, currency), nil
}

func ZeroMoney(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount) && m.Currency() == other.Currency()
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, fmt.Errorf("currency mismatch: %s and %s", m.Currency(), other.Currency())
	}
	return NewMoney(m.amount.Add(other.amount), m.currency), nil
}

// Split divides m into n instalments of equal amount rounded down to the
// cent, and returns the remainder that makes the parts sum back to m.
func (m Money) Split(n int) (part Money, remainder Money) {
	if n <= 0 {
		return ZeroMoney(m.currency), m
	}
	each := m.amount.DivRound(decimal.NewFromInt(int64(n)), 4).RoundDown(2)
	rest := m.amount.Sub(each.Mul(decimal.NewFromInt(int64(n))))
	return NewMoney(each, m.currency), NewMoney(rest, m.currency)
}

// StringFixed renders the amount with two decimals, without currency.
func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.Currency())
}
