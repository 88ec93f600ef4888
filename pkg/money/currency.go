package money

import (
	"fmt"
	"sort"

	"golang.org/x/text/currency"
)

// MaxScale is the largest supported number of minor-unit digits. 10^18 is
// the largest power of ten that fits an int64.
const MaxScale = 18

// Currency describes a currency known to a Registry.
type Currency struct {
	Code  string // ISO 4217-style code, e.g. "USD"
	Scale uint8  // Minor-unit digits, e.g. 2 for USD
	Name  string // Optional display name
}

// Registry is an immutable lookup table of currencies. ISO 4217 codes are
// always known; custom currencies are added at construction time and take
// precedence over ISO entries with the same code.
//
// A Registry is safe for concurrent use.
type Registry struct {
	custom map[string]Currency
}

var defaultRegistry = &Registry{custom: map[string]Currency{}}

// Default returns the process-wide registry holding only ISO 4217 currencies.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry creates a registry with the given custom currencies on top of
// the ISO 4217 table.
func NewRegistry(custom ...Currency) (*Registry, error) {
	r := &Registry{custom: make(map[string]Currency, len(custom))}
	for _, c := range custom {
		if !isCurrencyCode(c.Code) {
			return nil, fmt.Errorf("%w: %q is not a 3-letter uppercase code", ErrInvalidCurrency, c.Code)
		}
		if c.Scale > MaxScale {
			return nil, fmt.Errorf("%w: %s scale %d exceeds %d", ErrInvalidCurrency, c.Code, c.Scale, MaxScale)
		}
		if _, dup := r.custom[c.Code]; dup {
			return nil, fmt.Errorf("%w: %s defined twice", ErrInvalidCurrency, c.Code)
		}
		r.custom[c.Code] = c
	}
	return r, nil
}

// Lookup resolves a currency code.
func (r *Registry) Lookup(code string) (Currency, error) {
	if !isCurrencyCode(code) {
		return Currency{}, fmt.Errorf("%w: %q is not a 3-letter uppercase code", ErrInvalidCurrency, code)
	}
	if c, ok := r.custom[code]; ok {
		return c, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, fmt.Errorf("%w: unknown currency %s", ErrInvalidCurrency, code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return Currency{Code: code, Scale: uint8(scale)}, nil
}

// IsISO reports whether code is a recognised ISO 4217 code, ignoring custom entries.
func IsISO(code string) bool {
	if !isCurrencyCode(code) {
		return false
	}
	_, err := currency.ParseISO(code)
	return err == nil
}

// Custom returns the custom currencies sorted by code.
func (r *Registry) Custom() []Currency {
	out := make([]Currency, 0, len(r.custom))
	for _, c := range r.custom {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
