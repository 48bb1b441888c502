package decimal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrNonFinite is returned when a NaN or infinite float is converted to Money.
var ErrNonFinite = errors.New("amount is not a finite number")

// Money represents a monetary amount for presentation. The calculation engine
// works in float64; values are rounded only once they reach a Money.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from a finite float64. Non-finite values become zero;
// use FromFloat when the caller needs to know.
func NewMoney(value float64) Money {
	m, err := FromFloat(value)
	if err != nil {
		return Money{decimal.Zero}
	}
	return m
}

// FromFloat converts a float64, rejecting NaN and infinities.
func FromFloat(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, ErrNonFinite
	}
	return Money{decimal.NewFromFloat(value)}, nil
}

// NewMoneyFromString parses an amount that may contain grouping separators.
func NewMoneyFromString(value string) (Money, error) {
	clean := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(value))
	if clean == "" {
		return Money{decimal.Zero}, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Cents returns the amount in minor units, rounded half away from zero.
// Amounts beyond MaxCentsAmount do not fit in an int64.
func (m Money) Cents() int64 {
	return m.Decimal.Round(2).Shift(2).IntPart()
}

// String returns the amount with two decimals and no grouping.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

var printer = message.NewPrinter(language.English)

// Grouped formats value with thousands separators and the given decimals.
func Grouped(value float64, places int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "Error"
	}
	rounded := decimal.NewFromFloat(value).Round(int32(places)).InexactFloat64()
	return printer.Sprintf(fmt.Sprintf("%%.%df", places), rounded)
}

// Format renders a money figure the way the calculators display it: millions
// as "12.50 M", smaller amounts grouped with no decimals, and "Error" for
// non-finite values.
func Format(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "Error"
	}
	if math.Abs(value) >= 1_000_000 {
		return decimal.NewFromFloat(value).Shift(-6).StringFixed(2) + " M"
	}
	return Grouped(value, 0)
}

// MaxCentsAmount is the largest magnitude whose cents fit in an int64.
var MaxCentsAmount = decimal.NewFromInt(math.MaxInt64).Shift(-2)

// Display renders value with its currency symbol, e.g. "$1,234.50". Amounts
// too large for minor units fall back to Grouped without a symbol.
func Display(value float64, currency string) string {
	m, err := FromFloat(value)
	if err != nil {
		return "Error"
	}
	if m.Decimal.Abs().GreaterThan(MaxCentsAmount) {
		return Grouped(value, 2)
	}
	if currency == "" {
		currency = "LKR"
	}
	return gomoney.New(m.Cents(), strings.ToUpper(currency)).Display()
}

// Percent formats a fraction as a percentage with two decimals.
func Percent(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return "Error"
	}
	return decimal.NewFromFloat(fraction).Shift(2).StringFixed(2) + "%"
}
