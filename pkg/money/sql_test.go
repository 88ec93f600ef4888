package money_test

import (
	"database/sql/driver"
	"math/big"
	"testing"

	"github.com/SscSPs/money/pkg/money"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAndScan(t *testing.T) {
	m := money.MustNew("USD", "19.99")

	var _ driver.Valuer = m
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "USD 19.99", v)

	var fromString, fromBytes money.Money
	require.NoError(t, fromString.Scan("USD 19.99"))
	require.NoError(t, fromBytes.Scan([]byte("USD 19.99")))
	assert.Equal(t, m, fromString)
	assert.Equal(t, m, fromBytes)

	var bad money.Money
	assert.ErrorIs(t, bad.Scan(nil), money.ErrParse)
	assert.ErrorIs(t, bad.Scan(int64(1999)), money.ErrParse)
	assert.ErrorIs(t, bad.Scan("USD 19.9"), money.ErrParse)

	_, err = money.Money{}.Value()
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestNumeric(t *testing.T) {
	m := money.MustNew("USD", "-19.99")

	n := m.Numeric()
	assert.True(t, n.Valid)
	assert.Equal(t, int32(-2), n.Exp)
	assert.Equal(t, 0, n.Int.Cmp(big.NewInt(-1999)))

	back, err := money.FromNumeric("USD", n)
	require.NoError(t, err)
	assert.Equal(t, m, back)

	// NUMERIC(12,4) columns carry extra zeros.
	padded, err := money.FromNumeric("USD", pgtype.Numeric{Int: big.NewInt(199900), Exp: -4, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, money.MustNew("USD", "19.99"), padded)

	zero, err := money.FromNumeric("JPY", pgtype.Numeric{Valid: true})
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestFromNumeric_Invalid(t *testing.T) {
	tests := []pgtype.Numeric{
		{},
		{NaN: true, Valid: true},
		{InfinityModifier: pgtype.Infinity, Valid: true},
		{Int: big.NewInt(1999), Exp: -3, Valid: true},
	}
	for _, n := range tests {
		_, err := money.FromNumeric("USD", n)
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	}

	_, err := money.FromNumeric("usd", pgtype.Numeric{Int: big.NewInt(1), Valid: true})
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
}
