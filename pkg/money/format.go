package money

import (
	"fmt"
	"regexp"
	"strings"
)

// canonicalAmount matches the amount part of the canonical text form: an
// optional minus sign, an integer part without superfluous leading zeros and
// an optional fraction.
var canonicalAmount = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Format renders m in canonical text form, e.g. "USD 19.99" or "JPY 500".
func Format(m Money) string { return m.String() }

// String returns the canonical text form of m.
func (m Money) String() string {
	return m.currency + " " + m.Decimal().StringFixed(int32(m.scale))
}

// Parse reads the canonical text form produced by Format.
func Parse(s string) (Money, error) {
	return defaultRegistry.Parse(s)
}

// Parse reads the canonical text form produced by Format. The fraction must
// carry exactly the currency's scale in digits.
func (r *Registry) Parse(s string) (Money, error) {
	code, amount, ok := strings.Cut(s, " ")
	if !ok {
		return Money{}, fmt.Errorf("%w: %q is not in \"CCC amount\" form", ErrParse, s)
	}
	c, err := r.Lookup(code)
	if err != nil {
		return Money{}, err
	}
	if !canonicalAmount.MatchString(amount) {
		return Money{}, fmt.Errorf("%w: %q is not a canonical amount", ErrParse, amount)
	}
	digits := 0
	if _, frac, ok := strings.Cut(amount, "."); ok {
		digits = len(frac)
	}
	if digits != int(c.Scale) {
		return Money{}, fmt.Errorf("%w: %q must have %d fractional digits for %s", ErrParse, amount, c.Scale, c.Code)
	}
	m, err := r.New(c.Code, amount)
	if err != nil {
		return Money{}, err
	}
	if m.units == 0 && strings.HasPrefix(amount, "-") {
		return Money{}, fmt.Errorf("%w: negative zero %q", ErrParse, amount)
	}
	return m, nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Money) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the default registry.
func (m *Money) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
