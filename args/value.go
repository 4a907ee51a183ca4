package args

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/mwantia/commands/data"
)

// Value is a parsed argument tagged with the Type it was converted to.
// The zero Value marks a declared positional that received no token.
type Value struct {
	typ     Type
	payload any
}

// NewValue wraps payload without checking it against t. Parsers build
// values through conversion; this is for hosts constructing Args directly.
func NewValue(t Type, payload any) Value {
	return Value{typ: t, payload: payload}
}

func StringValue(s string) Value {
	return Value{typ: String, payload: s}
}

func BoolValue(b bool) Value {
	return Value{typ: Bool, payload: b}
}

func Int32Value(i int32) Value {
	return Value{typ: Int32, payload: i}
}

func Int64Value(i int64) Value {
	return Value{typ: Int64, payload: i}
}

func Float64Value(f float64) Value {
	return Value{typ: Float64, payload: f}
}

func (v Value) Type() Type {
	return v.typ
}

func (v Value) Valid() bool {
	return !v.typ.IsZero()
}

// Any returns the untyped payload.
func (v Value) Any() any {
	return v.payload
}

// String renders the payload the way it would be typed on a command line.
func (v Value) String() string {
	// rune and int32 share a Go type, so the tag decides.
	if r, ok := v.payload.(rune); ok && v.typ.kind == KindChar {
		return string(r)
	}

	switch p := v.payload.(type) {
	case nil:
		return ""
	case string:
		return p
	case bool:
		return strconv.FormatBool(p)
	case int8:
		return strconv.FormatInt(int64(p), 10)
	case int16:
		return strconv.FormatInt(int64(p), 10)
	case int32:
		return strconv.FormatInt(int64(p), 10)
	case int64:
		return strconv.FormatInt(p, 10)
	case float32:
		return strconv.FormatFloat(float64(p), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(p, 'g', -1, 64)
	case *big.Int:
		return p.String()
	case *apd.Decimal:
		return p.String()
	case *data.Data:
		return p.String()
	case fmt.Stringer:
		return p.String()
	default:
		return fmt.Sprint(p)
	}
}

// Equal compares type and payload structurally.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}

	a, err := canonicalBytes(v.canonical())
	if err != nil {
		return false
	}
	b, err := canonicalBytes(other.canonical())
	if err != nil {
		return false
	}

	return string(a) == string(b)
}

// As returns the payload as T and panics when the value holds something
// else. Use it where the declared Type already guarantees T.
func As[T any](v Value) T {
	t, ok := v.payload.(T)
	if !ok {
		panic(fmt.Sprintf("args: value of type %s holds %T, not %T", v.typ, v.payload, t))
	}

	return t
}

// TryAs is the non-panicking form of As.
func TryAs[T any](v Value) (T, bool) {
	t, ok := v.payload.(T)
	return t, ok
}
