// Package moneypb converts between money.Money and google.type.Money, the
// {currency_code, units, nanos} message used by protobuf APIs.
package moneypb

import (
	"fmt"

	"github.com/SscSPs/money/pkg/money"
	"github.com/shopspring/decimal"
	gtmoney "google.golang.org/genproto/googleapis/type/money"
)

const (
	// NanosMin is the smallest valid nanos value.
	NanosMin = -999_999_999
	// NanosMax is the largest valid nanos value.
	NanosMax = 999_999_999
)

// ValidNanos reports whether nanos lies in [NanosMin, NanosMax].
func ValidNanos(nanos int32) bool {
	return nanos >= NanosMin && nanos <= NanosMax
}

// ValidUnitsNanos reports whether nanos is in range and units and nanos do
// not have opposite signs.
func ValidUnitsNanos(units int64, nanos int32) bool {
	if !ValidNanos(nanos) {
		return false
	}
	if units < 0 || nanos < 0 {
		if units > 0 || nanos > 0 {
			return false
		}
	}
	return true
}

// ToProto converts m to google.type.Money. Amounts with digits below 10^-9
// cannot be represented and fail with money.ErrInvalidAmount.
func ToProto(m money.Money) (*gtmoney.Money, error) {
	if m.Currency() == "" {
		return nil, fmt.Errorf("%w: zero Money", money.ErrInvalidCurrency)
	}
	d := m.Decimal()
	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(9)
	if !frac.IsInteger() {
		return nil, fmt.Errorf("%w: %s has digits below nanos", money.ErrInvalidAmount, m)
	}
	return &gtmoney.Money{
		CurrencyCode: m.Currency(),
		Units:        whole.IntPart(),
		Nanos:        int32(frac.IntPart()),
	}, nil
}

// FromProto converts google.type.Money using the default registry.
func FromProto(p *gtmoney.Money) (money.Money, error) {
	return FromProtoWith(money.Default(), p)
}

// FromProtoWith converts google.type.Money using r to resolve the currency.
// Nanos finer than the currency's scale fail with money.ErrInvalidAmount.
func FromProtoWith(r *money.Registry, p *gtmoney.Money) (money.Money, error) {
	if p == nil {
		return money.Money{}, fmt.Errorf("%w: nil google.type.Money", money.ErrInvalidAmount)
	}
	units, nanos := p.GetUnits(), p.GetNanos()
	if !ValidNanos(nanos) {
		return money.Money{}, fmt.Errorf("%w: nanos (%d) must be in range [-999,999,999, +999,999,999]", money.ErrInvalidAmount, nanos)
	}
	if !ValidUnitsNanos(units, nanos) {
		return money.Money{}, fmt.Errorf("%w: units (%d) and nanos (%d) must be of the same sign", money.ErrInvalidAmount, units, nanos)
	}
	amount := decimal.NewFromInt(units).Add(decimal.New(int64(nanos), -9))
	return r.FromDecimal(p.GetCurrencyCode(), amount)
}
