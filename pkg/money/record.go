package money

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/encoding/protowire"
	"gopkg.in/yaml.v3"
)

// Record is the structured interchange form of Money shared with other
// language bindings. Units are minor units at Scale digits.
//
// Its binary form is the protobuf wire encoding of
//
//	message Money {
//	  string currency = 1;
//	  sint64 units = 2;
//	  uint32 scale = 3;
//	}
type Record struct {
	Currency string `json:"currency" yaml:"currency"`
	Units    int64  `json:"units" yaml:"units"`
	Scale    uint32 `json:"scale" yaml:"scale"`
}

const (
	fieldCurrency protowire.Number = 1
	fieldUnits    protowire.Number = 2
	fieldScale    protowire.Number = 3
)

// Record returns the interchange form of m.
func (m Money) Record() Record {
	return Record{Currency: m.currency, Units: m.units, Scale: uint32(m.scale)}
}

// FromRecord validates an interchange record using the default registry.
func FromRecord(rec Record) (Money, error) {
	return defaultRegistry.FromRecord(rec)
}

// FromRecord validates an interchange record and rescales it to the
// currency's scale.
func (r *Registry) FromRecord(rec Record) (Money, error) {
	if rec.Scale > 255 {
		return Money{}, fmt.Errorf("%w: scale %d", ErrInvalidAmount, rec.Scale)
	}
	return r.FromUnits(rec.Currency, rec.Units, uint8(rec.Scale))
}

// MarshalJSON encodes m as its Record.
func (m Money) MarshalJSON() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	return json.Marshal(m.Record())
}

// UnmarshalJSON accepts either a Record object or a canonical text string.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		return m.UnmarshalText([]byte(s))
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	v, err := FromRecord(rec)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalYAML encodes m as its canonical text.
func (m Money) MarshalYAML() (interface{}, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	return m.String(), nil
}

// UnmarshalYAML accepts either a canonical text scalar or a Record mapping.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return m.UnmarshalText([]byte(value.Value))
	case yaml.MappingNode:
		var rec Record
		if err := value.Decode(&rec); err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		v, err := FromRecord(rec)
		if err != nil {
			return err
		}
		*m = v
		return nil
	}
	return fmt.Errorf("%w: line %d: money must be a scalar or a mapping", ErrParse, value.Line)
}

// MarshalBinary implements encoding.BinaryMarshaler. Zero-valued numeric
// fields are omitted, as proto3 encoders do.
func (m Money) MarshalBinary() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: zero Money", ErrInvalidCurrency)
	}
	b := make([]byte, 0, 16)
	b = protowire.AppendTag(b, fieldCurrency, protowire.BytesType)
	b = protowire.AppendString(b, m.currency)
	if m.units != 0 {
		b = protowire.AppendTag(b, fieldUnits, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(m.units))
	}
	if m.scale != 0 {
		b = protowire.AppendTag(b, fieldScale, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.scale))
	}
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler using the default registry.
func (m *Money) UnmarshalBinary(data []byte) error {
	rec, err := decodeRecord(data)
	if err != nil {
		return err
	}
	v, err := FromRecord(rec)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func decodeRecord(b []byte) (Record, error) {
	var rec Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Record{}, fmt.Errorf("%w: %v", ErrParse, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldCurrency && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return Record{}, fmt.Errorf("%w: currency: %v", ErrParse, protowire.ParseError(n))
			}
			rec.Currency = v
			b = b[n:]
		case num == fieldUnits && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Record{}, fmt.Errorf("%w: units: %v", ErrParse, protowire.ParseError(n))
			}
			rec.Units = protowire.DecodeZigZag(v)
			b = b[n:]
		case num == fieldScale && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Record{}, fmt.Errorf("%w: scale: %v", ErrParse, protowire.ParseError(n))
			}
			if v > 1<<32-1 {
				return Record{}, fmt.Errorf("%w: scale %d overflows uint32", ErrParse, v)
			}
			rec.Scale = uint32(v)
			b = b[n:]
		case num == fieldCurrency || num == fieldUnits || num == fieldScale:
			return Record{}, fmt.Errorf("%w: field %d has wire type %d", ErrParse, num, typ)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Record{}, fmt.Errorf("%w: field %d: %v", ErrParse, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return rec, nil
}
