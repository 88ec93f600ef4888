package money

import (
	"database/sql/driver"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Value implements driver.Valuer. Money is stored as its canonical text.
func (m Money) Value() (driver.Value, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	return m.String(), nil
}

// Scan implements sql.Scanner for columns holding the canonical text.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return m.UnmarshalText([]byte(v))
	case []byte:
		return m.UnmarshalText(v)
	case nil:
		return fmt.Errorf("%w: cannot scan NULL into Money", ErrParse)
	}
	return fmt.Errorf("%w: cannot scan %T into Money", ErrParse, src)
}

// Numeric returns the amount as a PostgreSQL numeric for binding to a
// NUMERIC column next to a separate currency column.
func (m Money) Numeric() pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(m.units), Exp: -int32(m.scale), Valid: true}
}

// FromNumeric builds an amount from a PostgreSQL numeric using the default registry.
func FromNumeric(code string, n pgtype.Numeric) (Money, error) {
	return defaultRegistry.FromNumeric(code, n)
}

// FromNumeric builds an amount from a PostgreSQL numeric. NULL, NaN and
// infinite values are rejected.
func (r *Registry) FromNumeric(code string, n pgtype.Numeric) (Money, error) {
	if !n.Valid {
		return Money{}, fmt.Errorf("%w: NULL numeric", ErrInvalidAmount)
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return Money{}, fmt.Errorf("%w: numeric is not finite", ErrInvalidAmount)
	}
	coef := n.Int
	if coef == nil {
		coef = new(big.Int)
	}
	return r.FromDecimal(code, decimal.NewFromBigInt(coef, n.Exp))
}
