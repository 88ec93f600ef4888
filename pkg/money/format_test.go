package money_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/SscSPs/money/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		m    money.Money
		want string
	}{
		{money.MustNew("USD", "19.99"), "USD 19.99"},
		{money.MustNew("USD", "20"), "USD 20.00"},
		{money.MustNew("USD", "-0.5"), "USD -0.50"},
		{money.MustNew("USD", "0"), "USD 0.00"},
		{money.MustNew("JPY", "500"), "JPY 500"},
		{money.MustNew("KWD", "1.5"), "KWD 1.500"},
		{mustUnits(t, "USD", math.MaxInt64), "USD 92233720368547758.07"},
		{mustUnits(t, "USD", math.MinInt64), "USD -92233720368547758.08"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money.Format(tt.m))
	}
}

func TestParse_RoundTrip(t *testing.T) {
	values := []money.Money{
		money.MustNew("USD", "19.99"),
		money.MustNew("USD", "-0.01"),
		money.MustNew("USD", "0"),
		money.MustNew("EUR", "1000000"),
		money.MustNew("JPY", "-42"),
		money.MustNew("KWD", "0.001"),
		mustUnits(t, "USD", math.MaxInt64),
		mustUnits(t, "USD", math.MinInt64),
	}
	for _, m := range values {
		got, err := money.Parse(money.Format(m))
		require.NoError(t, err, m.String())
		assert.Equal(t, m, got)
	}
}

func TestParse_RoundTripRandomized(t *testing.T) {
	reg, err := money.NewRegistry(
		money.Currency{Code: "QPT", Scale: 0},
		money.Currency{Code: "QBT", Scale: 8},
		money.Currency{Code: "QMX", Scale: money.MaxScale},
	)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(20240601))
	codes := []string{"USD", "EUR", "JPY", "KWD", "GBP", "QPT", "QBT", "QMX"}
	for i := 0; i < 2000; i++ {
		// Mix full-range values with small ones so short amounts and
		// leading-zero fractions are covered too.
		var units int64
		switch i % 3 {
		case 0:
			units = int64(rng.Uint64())
		case 1:
			units = rng.Int63n(1_000_000) - 500_000
		default:
			units = rng.Int63n(200) - 100
		}
		code := codes[rng.Intn(len(codes))]
		c, err := reg.Lookup(code)
		require.NoError(t, err)

		m, err := reg.FromUnits(code, units, c.Scale)
		require.NoError(t, err)

		got, err := reg.Parse(money.Format(m))
		require.NoError(t, err, "format %q", money.Format(m))
		require.Equal(t, m, got, "format %q", money.Format(m))
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, s := range []string{
		"USD19.99",
		"USD 19.9",
		"USD 19.990",
		"USD 19",
		"JPY 500.0",
		"USD +1.00",
		"USD 1e2",
		"USD 01.00",
		"USD -0.00",
		"USD  1.00",
		"USD 1.00 ",
		"USD .50",
		"USD 1.",
		"",
	} {
		_, err := money.Parse(s)
		assert.ErrorIs(t, err, money.ErrParse, "input %q", s)
	}
}

func TestParse_BadCurrencyOrRange(t *testing.T) {
	_, err := money.Parse("usd 1.00")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
	_, err = money.Parse("QQQ 1.00")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
	_, err = money.Parse("USD 92233720368547758.08")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestTextMarshaling(t *testing.T) {
	m := money.MustNew("EUR", "7.25")
	text, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "EUR 7.25", string(text))

	var back money.Money
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, m, back)

	_, err = money.Money{}.MarshalText()
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
	assert.ErrorIs(t, back.UnmarshalText([]byte("EUR 7")), money.ErrParse)
	assert.Equal(t, m, back, "failed unmarshal must not modify the receiver")
}
