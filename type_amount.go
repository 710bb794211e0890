package ledgerline

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount represents an exact monetary value. The engine is single-currency:
// an Amount carries no currency of its own, the display currency is a
// rendering concern only.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from common numeric types.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Amount{value: v}
	case float32:
		return Amount{value: decimal.NewFromFloat32(v)}
	case float64:
		return Amount{value: decimal.NewFromFloat(v)}
	case int:
		return Amount{value: decimal.NewFromInt(int64(v))}
	case int32:
		return Amount{value: decimal.NewFromInt32(v)}
	case int64:
		return Amount{value: decimal.NewFromInt(v)}
	}
	return Amount{}
}

// ParseAmount parses an exact decimal amount from its string form.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d}, nil
}

func (a Amount) IsZero() bool                    { return a.value.IsZero() }
func (a Amount) IsPositive() bool                { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool             { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool          { return a.value.LessThan(b.value) }
func (a Amount) LessThanOrEqual(b Amount) bool   { return a.value.LessThanOrEqual(b.value) }
func (a Amount) GreaterThan(b Amount) bool       { return a.value.GreaterThan(b.value) }
func (a Amount) Neg() Amount                     { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount                     { return Amount{value: a.value.Abs()} }
func (a Amount) Add(b Amount) Amount             { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount             { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(b Amount) Amount             { return Amount{value: a.value.Mul(b.value)} }
func (a Amount) Div(b Amount) Amount             { return Amount{value: a.value.Div(b.value)} }
func (a Amount) Round(places int32) Amount       { return Amount{value: a.value.Round(places)} }
func (a Amount) Decimal() decimal.Decimal        { return a.value }
func (a Amount) InexactFloat64() float64         { return a.value.InexactFloat64() }

// String returns the plain decimal representation, e.g. "1234.5".
func (a Amount) String() string { return a.value.String() }

// Ratio returns a/b as a float, or 0 when b is zero. Reports and ratios use
// floats; the journal itself stays exact.
func (a Amount) Ratio(b Amount) float64 {
	if b.IsZero() {
		return 0
	}
	return a.value.Div(b.value).InexactFloat64()
}

// Display formats the amount in the given display currency, e.g. "$1,234.50".
// Formatting only: no conversion happens.
func (a Amount) Display(currencyCode string) string {
	cur := money.New(0, currencyCode).Currency()
	minor := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.Round(0).IntPart())
}

func (a Amount) MarshalJSON() ([]byte, error) {
	// Rounded to cents: journal amounts are monetary, not fractional prices.
	return json.Marshal(a.value.Round(2))
}

func (a *Amount) UnmarshalJSON(bytes []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(bytes, &d); err != nil {
		return err
	}
	a.value = d
	return nil
}

var _ json.Marshaler = (*Amount)(nil)
var _ json.Unmarshaler = (*Amount)(nil)
