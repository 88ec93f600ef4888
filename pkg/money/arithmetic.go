package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Add returns a + b.
func Add(a, b Money) (Money, error) { return a.Add(b) }

// Subtract returns a - b.
func Subtract(a, b Money) (Money, error) { return a.Sub(b) }

// Compare returns -1, 0 or +1 depending on whether a is less than, equal to
// or greater than b.
func Compare(a, b Money) (int, error) { return a.Compare(b) }

// Sum adds all amounts. They must share a currency.
func Sum(first Money, rest ...Money) (Money, error) {
	if !first.valid() {
		return Money{}, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	total := first
	for _, m := range rest {
		var err error
		if total, err = total.Add(m); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// Add returns m + o.
func (m Money) Add(o Money) (Money, error) {
	a, b, err := align(m, o)
	if err != nil {
		return Money{}, err
	}
	s := a.units + b.units
	if (b.units > 0 && s < a.units) || (b.units < 0 && s > a.units) {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrOverflow, m, o)
	}
	return Money{currency: a.currency, units: s, scale: a.scale}, nil
}

// Sub returns m - o.
func (m Money) Sub(o Money) (Money, error) {
	a, b, err := align(m, o)
	if err != nil {
		return Money{}, err
	}
	d := a.units - b.units
	if (b.units < 0 && d < a.units) || (b.units > 0 && d > a.units) {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrOverflow, m, o)
	}
	return Money{currency: a.currency, units: d, scale: a.scale}, nil
}

// Multiply scales m by a dimensionless factor and rounds the result to the
// currency's scale using banker's rounding (round half to even).
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if !m.valid() {
		return Money{}, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	product, ok := mulRoundBank(m.Decimal(), factor, m.scale)
	units, _, fits := minorUnits(product, m.scale)
	if !ok || !fits {
		return Money{}, fmt.Errorf("%w: %s * %s", ErrOverflow, m, fmtDecimal(factor))
	}
	return Money{currency: m.currency, units: units, scale: m.scale}, nil
}

// MultiplyInt scales m by an integer factor.
func (m Money) MultiplyInt(n int64) (Money, error) {
	if !m.valid() {
		return Money{}, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	v, ok := mul64(m.units, n)
	if !ok {
		return Money{}, fmt.Errorf("%w: %s * %d", ErrOverflow, m, n)
	}
	return Money{currency: m.currency, units: v, scale: m.scale}, nil
}

// Negate returns -m.
func (m Money) Negate() (Money, error) {
	if !m.valid() {
		return Money{}, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	if m.units == math.MinInt64 {
		return Money{}, fmt.Errorf("%w: -(%s)", ErrOverflow, m)
	}
	return Money{currency: m.currency, units: -m.units, scale: m.scale}, nil
}

// Abs returns |m|.
func (m Money) Abs() (Money, error) {
	if m.units < 0 {
		return m.Negate()
	}
	if !m.valid() {
		return Money{}, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	return m, nil
}

// Compare returns -1, 0 or +1 depending on whether m is less than, equal to
// or greater than o.
func (m Money) Compare(o Money) (int, error) {
	if !m.valid() || !o.valid() || m.currency != o.currency {
		return 0, fmt.Errorf("%w: %q vs %q", ErrCurrencyMismatch, m.currency, o.currency)
	}
	if m.scale != o.scale {
		return m.Decimal().Cmp(o.Decimal()), nil
	}
	switch {
	case m.units < o.units:
		return -1, nil
	case m.units > o.units:
		return 1, nil
	}
	return 0, nil
}

// Equal reports whether m and o have the same currency and amount.
func (m Money) Equal(o Money) bool {
	if m.currency != o.currency {
		return false
	}
	c, err := m.Compare(o)
	return err == nil && c == 0
}

// LessThan reports whether m < o. Different currencies are never ordered.
func (m Money) LessThan(o Money) bool {
	c, err := m.Compare(o)
	return err == nil && c < 0
}

// GreaterThan reports whether m > o. Different currencies are never ordered.
func (m Money) GreaterThan(o Money) bool {
	c, err := m.Compare(o)
	return err == nil && c > 0
}

// Allocate splits m into shares proportional to ratios. Minor units left
// over after the proportional split go one at a time to the leading shares
// with a non-zero ratio, so the shares always add up to m.
func (m Money) Allocate(ratios ...int64) ([]Money, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	if len(ratios) == 0 {
		return nil, fmt.Errorf("%w: no ratios to allocate by", ErrInvalidAmount)
	}
	total := decimal.Zero
	for _, r := range ratios {
		if r < 0 {
			return nil, fmt.Errorf("%w: negative ratio %d", ErrInvalidAmount, r)
		}
		total = total.Add(decimal.NewFromInt(r))
	}
	if total.IsZero() {
		return nil, fmt.Errorf("%w: ratios sum to zero", ErrInvalidAmount)
	}

	amount := decimal.NewFromInt(m.units)
	shares := make([]Money, len(ratios))
	remainder := m.units
	for i, r := range ratios {
		q, _ := amount.Mul(decimal.NewFromInt(r)).QuoRem(total, 0)
		units := q.IntPart()
		shares[i] = Money{currency: m.currency, units: units, scale: m.scale}
		remainder -= units
	}

	step := int64(1)
	if remainder < 0 {
		step = -1
	}
	for i := 0; remainder != 0; i = (i + 1) % len(shares) {
		if ratios[i] == 0 {
			continue
		}
		shares[i].units += step
		remainder -= step
	}
	return shares, nil
}

// align brings two same-currency amounts to a common scale.
func align(a, b Money) (Money, Money, error) {
	if !a.valid() || !b.valid() || a.currency != b.currency {
		return Money{}, Money{}, fmt.Errorf("%w: %q vs %q", ErrCurrencyMismatch, a.currency, b.currency)
	}
	if a.scale == b.scale {
		return a, b, nil
	}
	if a.scale < b.scale {
		x, y, err := align(b, a)
		return y, x, err
	}
	v, ok := mul64(b.units, pow10[a.scale-b.scale])
	if !ok {
		return Money{}, Money{}, fmt.Errorf("%w: rescaling %s to %d digits", ErrOverflow, b, a.scale)
	}
	return a, Money{currency: b.currency, units: v, scale: a.scale}, nil
}
