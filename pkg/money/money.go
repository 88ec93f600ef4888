package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount in a single currency, held as an integer
// number of minor units at the currency's scale. The zero value is not a
// valid amount; build values with New, FromMinorUnits or a Registry.
//
// Money is comparable with == for values built by the same Registry.
type Money struct {
	currency string
	units    int64
	scale    uint8
}

var pow10 = [...]int64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
}

// New parses a decimal amount such as "19.99" in the given currency.
func New(code, amount string) (Money, error) {
	return defaultRegistry.New(code, amount)
}

// NewFromFloat builds an amount from a float64 through its shortest decimal form.
func NewFromFloat(code string, amount float64) (Money, error) {
	return defaultRegistry.NewFromFloat(code, amount)
}

// FromDecimal builds an amount from a decimal value.
func FromDecimal(code string, amount decimal.Decimal) (Money, error) {
	return defaultRegistry.FromDecimal(code, amount)
}

// FromMinorUnits builds an amount from minor units at the currency's scale.
func FromMinorUnits(code string, units int64) (Money, error) {
	return defaultRegistry.FromMinorUnits(code, units)
}

// FromUnits builds an amount from units at an explicit scale.
func FromUnits(code string, units int64, scale uint8) (Money, error) {
	return defaultRegistry.FromUnits(code, units, scale)
}

// MustNew is like New but panics on error.
func MustNew(code, amount string) Money {
	m, err := New(code, amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount in the given currency.
func Zero(code string) (Money, error) {
	return defaultRegistry.FromMinorUnits(code, 0)
}

// New parses a decimal amount such as "19.99" in the given currency.
func (r *Registry) New(code, amount string) (Money, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return Money{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, amount)
	}
	return fromDecimal(c, d)
}

// NewFromFloat builds an amount from a float64. NaN and infinities are rejected.
func (r *Registry) NewFromFloat(code string, amount float64) (Money, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return Money{}, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, fmt.Errorf("%w: %v is not finite", ErrInvalidAmount, amount)
	}
	return fromDecimal(c, decimal.NewFromFloat(amount))
}

// FromDecimal builds an amount from a decimal value.
func (r *Registry) FromDecimal(code string, amount decimal.Decimal) (Money, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return Money{}, err
	}
	return fromDecimal(c, amount)
}

// FromMinorUnits builds an amount from minor units at the currency's scale.
func (r *Registry) FromMinorUnits(code string, units int64) (Money, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return Money{}, err
	}
	return Money{currency: c.Code, units: units, scale: c.Scale}, nil
}

// FromUnits builds an amount from units at an explicit scale and rescales it
// to the currency's scale. Digits that would be lost fail with ErrInvalidAmount.
func (r *Registry) FromUnits(code string, units int64, scale uint8) (Money, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return Money{}, err
	}
	switch {
	case scale == c.Scale:
		return Money{currency: c.Code, units: units, scale: c.Scale}, nil
	case scale < c.Scale:
		v, ok := mul64(units, pow10[c.Scale-scale])
		if !ok {
			return Money{}, fmt.Errorf("%w: %d at scale %d does not fit %s minor units", ErrInvalidAmount, units, scale, c.Code)
		}
		return Money{currency: c.Code, units: v, scale: c.Scale}, nil
	default:
		diff := int(scale - c.Scale)
		if diff >= len(pow10) {
			if units != 0 {
				return Money{}, fmt.Errorf("%w: %d at scale %d has fractional %s minor units", ErrInvalidAmount, units, scale, c.Code)
			}
			return Money{currency: c.Code, scale: c.Scale}, nil
		}
		if units%pow10[diff] != 0 {
			return Money{}, fmt.Errorf("%w: %d at scale %d has fractional %s minor units", ErrInvalidAmount, units, scale, c.Code)
		}
		return Money{currency: c.Code, units: units / pow10[diff], scale: c.Scale}, nil
	}
}

func fromDecimal(c Currency, d decimal.Decimal) (Money, error) {
	units, integral, fits := minorUnits(d, c.Scale)
	if !integral {
		return Money{}, fmt.Errorf("%w: %s has more than %d fractional digits for %s", ErrInvalidAmount, fmtDecimal(d), c.Scale, c.Code)
	}
	if !fits {
		return Money{}, fmt.Errorf("%w: %s is out of range for %s", ErrInvalidAmount, fmtDecimal(d), c.Code)
	}
	return Money{currency: c.Code, units: units, scale: c.Scale}, nil
}

// magnitude returns the base-10 order of magnitude of a non-zero d.
func magnitude(d decimal.Decimal) int64 {
	return int64(d.NumDigits()) + int64(d.Exponent()) - 1
}

// fmtDecimal renders d for error messages. Extreme exponents are printed in
// scientific form instead of expanding every digit.
func fmtDecimal(d decimal.Decimal) string {
	if e := d.Exponent(); e > 40 || e < -40 {
		return fmt.Sprintf("%se%d", d.Coefficient(), e)
	}
	return d.String()
}

// mulRoundBank multiplies a by b and rounds to scale digits with banker's
// rounding. It reports false when the result cannot fit in int64 minor units.
// Exponents are checked before multiplying so extreme factors neither build
// huge coefficients nor overflow the decimal exponent.
func mulRoundBank(a, b decimal.Decimal, scale uint8) (decimal.Decimal, bool) {
	if a.IsZero() || b.IsZero() {
		return decimal.Zero, true
	}
	exp := int64(a.Exponent()) + int64(b.Exponent())
	if exp+int64(scale) > 19 {
		return decimal.Zero, false
	}
	// Under a tenth of a minor unit always rounds to zero.
	if int64(a.NumDigits())+int64(b.NumDigits())+exp < -int64(scale)-1 {
		return decimal.Zero, true
	}
	return a.Mul(b).RoundBank(int32(scale)), true
}

// minorUnits shifts d by scale digits and reports whether the result is an
// integer and whether it fits an int64.
func minorUnits(d decimal.Decimal, scale uint8) (units int64, integral, fits bool) {
	if d.IsZero() {
		return 0, true, true
	}
	// 10^19 already exceeds int64; skip building huge big.Ints.
	if int64(d.Exponent())+int64(scale) > 19 {
		return 0, true, false
	}
	shifted := d.Shift(int32(scale))
	if !shifted.IsInteger() {
		return 0, false, false
	}
	bi := shifted.BigInt()
	if !bi.IsInt64() {
		return 0, true, false
	}
	return bi.Int64(), true, true
}

// Currency returns the currency code.
func (m Money) Currency() string { return m.currency }

// MinorUnits returns the amount in minor units.
func (m Money) MinorUnits() int64 { return m.units }

// Scale returns the number of minor-unit digits.
func (m Money) Scale() uint8 { return m.scale }

// Decimal returns the amount as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.units, -int32(m.scale))
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.units == 0 }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.units < 0 }

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool { return m.units > 0 }

// Sign returns -1, 0 or +1.
func (m Money) Sign() int {
	switch {
	case m.units < 0:
		return -1
	case m.units > 0:
		return 1
	}
	return 0
}

func (m Money) valid() bool {
	return isCurrencyCode(m.currency)
}

func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
