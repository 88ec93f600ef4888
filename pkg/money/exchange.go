package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxRateMagnitude bounds the order of magnitude of an exchange rate: rates
// must lie within [10^-MaxRateMagnitude, 10^(MaxRateMagnitude+1)).
const MaxRateMagnitude = 64

// ExchangeRate converts amounts from one currency to another.
type ExchangeRate struct {
	from Currency
	to   Currency
	rate decimal.Decimal // Units of `to` per unit of `from`
}

// NewExchangeRate creates a rate using the default registry.
func NewExchangeRate(from, to string, rate decimal.Decimal) (ExchangeRate, error) {
	return defaultRegistry.NewExchangeRate(from, to, rate)
}

// NewExchangeRate creates a rate between two distinct known currencies.
// Currency codes are checked before the rate, which must be positive and
// within MaxRateMagnitude.
func (r *Registry) NewExchangeRate(from, to string, rate decimal.Decimal) (ExchangeRate, error) {
	f, err := r.Lookup(from)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("'from' currency: %w", err)
	}
	t, err := r.Lookup(to)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("'to' currency: %w", err)
	}
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("%w: rate %s must be positive", ErrInvalidExchangeRate, fmtDecimal(rate))
	}
	if mag := magnitude(rate); mag > MaxRateMagnitude || mag < -MaxRateMagnitude {
		return ExchangeRate{}, fmt.Errorf("%w: rate %s is out of range", ErrInvalidExchangeRate, fmtDecimal(rate))
	}
	if f.Code == t.Code {
		return ExchangeRate{}, fmt.Errorf("%w: from and to currency codes cannot be the same", ErrInvalidExchangeRate)
	}
	return ExchangeRate{from: f, to: t, rate: rate}, nil
}

// From returns the source currency code.
func (x ExchangeRate) From() string { return x.from.Code }

// To returns the target currency code.
func (x ExchangeRate) To() string { return x.to.Code }

// Rate returns the number of target units per source unit.
func (x ExchangeRate) Rate() decimal.Decimal { return x.rate }

// Inverse returns the rate for the opposite direction. The inverted rate keeps
// decimal.DivisionPrecision digits past its leading digit.
func (x ExchangeRate) Inverse() ExchangeRate {
	if x.rate.IsZero() {
		return ExchangeRate{from: x.to, to: x.from}
	}
	places := int32(decimal.DivisionPrecision) + int32(magnitude(x.rate))
	return ExchangeRate{from: x.to, to: x.from, rate: decimal.NewFromInt(1).DivRound(x.rate, places)}
}

// Convert turns an amount in the source currency into the target currency,
// rounding to the target scale with banker's rounding.
func (x ExchangeRate) Convert(m Money) (Money, error) {
	if !m.valid() || m.currency != x.from.Code {
		return Money{}, fmt.Errorf("%w: rate converts %s, got %q", ErrCurrencyMismatch, x.from.Code, m.currency)
	}
	converted, ok := mulRoundBank(m.Decimal(), x.rate, x.to.Scale)
	units, _, fits := minorUnits(converted, x.to.Scale)
	if !ok || !fits {
		return Money{}, fmt.Errorf("%w: %s at %s %s/%s", ErrOverflow, m, fmtDecimal(x.rate), x.to.Code, x.from.Code)
	}
	return Money{currency: x.to.Code, units: units, scale: x.to.Scale}, nil
}
