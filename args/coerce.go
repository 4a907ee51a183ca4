package args

import (
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/mwantia/commands/data"
)

// convert coerces one finished token to t. Built-in kinds never consult the
// registry; External types only do.
func (p *Parser) convert(t Type, s string) (Value, error) {
	switch t.kind {
	case KindString:
		return Value{typ: t, payload: s}, nil

	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, invalidLiteral(t, s, "expected true or false", err)
		}
		return Value{typ: t, payload: b}, nil

	case KindChar:
		switch n := utf8.RuneCountInString(s); {
		case n == 0:
			return Value{}, invalidLiteral(t, s, "argument is too short, it must be exactly 1 character long", nil)
		case n > 1:
			return Value{}, invalidLiteral(t, s, "argument is too long, it must be exactly 1 character long", nil)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return Value{typ: t, payload: r}, nil

	case KindInt8:
		i, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return Value{}, invalidLiteral(t, s, "", err)
		}
		return Value{typ: t, payload: int8(i)}, nil

	case KindInt16:
		i, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return Value{}, invalidLiteral(t, s, "", err)
		}
		return Value{typ: t, payload: int16(i)}, nil

	case KindInt32:
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			// Values between MaxInt32 and MaxUint32 wrap like their
			// unsigned bit pattern.
			u, uerr := strconv.ParseUint(s, 10, 32)
			if uerr != nil {
				return Value{}, invalidLiteral(t, s, "", err)
			}
			return Value{typ: t, payload: int32(uint32(u))}, nil
		}
		return Value{typ: t, payload: int32(i)}, nil

	case KindInt64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			u, uerr := strconv.ParseUint(s, 10, 64)
			if uerr != nil {
				return Value{}, invalidLiteral(t, s, "", err)
			}
			return Value{typ: t, payload: int64(u)}, nil
		}
		return Value{typ: t, payload: i}, nil

	case KindFloat32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return Value{}, invalidLiteral(t, s, "", err)
		}
		return Value{typ: t, payload: float32(f)}, nil

	case KindFloat64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, invalidLiteral(t, s, "", err)
		}
		return Value{typ: t, payload: f}, nil

	case KindBigInt:
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Value{}, invalidLiteral(t, s, "not a base 10 integer", nil)
		}
		return Value{typ: t, payload: i}, nil

	case KindDecimal:
		d, _, err := apd.NewFromString(s)
		if err != nil {
			return Value{}, invalidLiteral(t, s, "", err)
		}
		return Value{typ: t, payload: d}, nil

	case KindData:
		decode := p.decoder
		if decode == nil {
			decode = data.Decode
		}
		d, err := decode(s)
		if err != nil {
			return Value{}, invalidLiteral(t, s, "", err)
		}
		return Value{typ: t, payload: d}, nil
	}

	converter, ok := p.converters.Lookup(t)
	if !ok {
		return Value{}, unsupportedType(t, s)
	}

	payload, err := converter(s)
	if err != nil {
		return Value{}, invalidLiteral(t, s, "", err)
	}

	return Value{typ: t, payload: payload}, nil
}
