package common

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Decimal struct {
	decimal decimal.Decimal
}

func ZeroDecimal() Decimal {
	return Decimal{}
}

func NewDecFromString(s string) (Decimal, error) {
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, errors.WithStack(err)
	}
	return Decimal{decimal: dec}, nil
}

func NewDecFromFloat64(f float64) Decimal {
	return Decimal{decimal: decimal.NewFromFloat(f)}
}

func NewDecFromInt64(i int64) Decimal {
	return Decimal{decimal: decimal.New(i, 0)}
}

// NewDecFromScaledInt64 builds a decimal from an unscaled integer and a scale,
// e.g. (123456, 2) -> 1234.56. This is the inverse of ScaledInt64 and is how
// decimals round-trip through a fixed-width row slot.
func NewDecFromScaledInt64(unscaled int64, scale int) Decimal {
	return Decimal{decimal: decimal.New(unscaled, int32(-scale))}
}

// ScaledInt64 returns the value as an unscaled integer at the given scale.
// Values requiring more fractional digits than scale cannot be stored
// losslessly and are rejected.
func (d Decimal) ScaledInt64(scale int) (int64, error) {
	shifted := d.decimal.Shift(int32(scale))
	if shifted.Exponent() < 0 && !shifted.Equal(shifted.Truncate(0)) {
		return 0, errors.Errorf("decimal %s does not fit in scale %d", d.String(), scale)
	}
	return shifted.IntPart(), nil
}

func (d Decimal) CompareTo(other Decimal) int {
	return d.decimal.Cmp(other.decimal)
}

func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{decimal: d.decimal.Add(other.decimal)}
}

func (d Decimal) Float64() float64 {
	f, _ := d.decimal.Float64()
	return f
}

func (d Decimal) String() string {
	return d.decimal.String()
}
