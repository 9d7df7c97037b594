// internal/models/money.go
package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale matches the decimal(10,2) columns the wizard was designed around.
const MoneyScale = 2

// MaxMoney is the largest value a decimal(10,2) column can hold.
var MaxMoney = decimal.RequireFromString("99999999.99")

// Money is a fixed-point amount with two fraction digits. It is always
// rendered as a decimal string ("1000.50") so clients never see float drift.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(MoneyScale)}
}

// ParseMoney parses a decimal string such as "399.00".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d), nil
}

// MustMoney is ParseMoney for literals; it panics on bad input.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(fmt.Sprintf("models: invalid money literal %q: %v", s, err))
	}
	return m
}

func (m Money) String() string {
	return m.Decimal.StringFixed(MoneyScale)
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both "12.30" and 12.3.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = NewMoney(d)
	return nil
}
