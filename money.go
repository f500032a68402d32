package investpro

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the currency every amount on the platform is expressed in.
const Currency = "BRL"

// Money represents a monetary value in Currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M is a convenient factory for Money.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Money{value: v}
	case float64:
		return Money{value: decimal.NewFromFloat(v)}
	case int:
		return Money{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Money{value: decimal.NewFromInt(v)}
	default:
		panic("unsupported type")
	}
}

// ParseMoney parses a user typed amount. Both "1234.56" and the Brazilian
// "1.234,56" notations are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// Times returns m multiplied by an integer quantity.
func (m Money) Times(quantity int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(quantity))}
}

// currency returns the money's currency
func (m Money) currency() *money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, Currency).Currency()
}

// String returns the string representation of the money value, e.g. R$1.234,56.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(maxMinor.Neg()) {
		return formatLarge(cur, m.value)
	}
	return cur.Formatter().Format(minor.IntPart())
}

// maxMinor is the largest amount, in cents, go-money can format.
var maxMinor = decimal.NewFromInt(math.MaxInt64)

// formatLarge formats v like the currency formatter, without the int64 limit.
func formatLarge(cur *money.Currency, v decimal.Decimal) string {
	digits := v.Abs().StringFixed(int32(cur.Fraction))
	intPart, frac, _ := strings.Cut(digits, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}
	amount := strings.NewReplacer("$", cur.Grapheme, "1", b.String()).Replace(cur.Template)
	if v.IsNegative() {
		return "-" + amount
	}
	return amount
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes the amount as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings. null leaves m at zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
