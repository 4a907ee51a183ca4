package args

// Kind enumerates the coercion targets the parser knows natively. Everything
// else is External and resolved through a Registry.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindChar
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBigInt
	KindDecimal
	KindData
	KindExternal
)

// Type describes the expected value of a positional or optional argument.
// Types are comparable and can be used as map keys.
type Type struct {
	kind Kind
	name string
}

var (
	String  = Type{kind: KindString, name: "string"}
	Bool    = Type{kind: KindBool, name: "bool"}
	Char    = Type{kind: KindChar, name: "char"}
	Int8    = Type{kind: KindInt8, name: "int8"}
	Int16   = Type{kind: KindInt16, name: "int16"}
	Int32   = Type{kind: KindInt32, name: "int32"}
	Int64   = Type{kind: KindInt64, name: "int64"}
	Float32 = Type{kind: KindFloat32, name: "float32"}
	Float64 = Type{kind: KindFloat64, name: "float64"}
	BigInt  = Type{kind: KindBigInt, name: "bigint"}
	Decimal = Type{kind: KindDecimal, name: "decimal"}
	Data    = Type{kind: KindData, name: "data"}
)

// Named declares a host-defined type. Values of it are produced by the
// first matching converter of the parser's Registry.
func Named(name string) Type {
	return Type{kind: KindExternal, name: name}
}

func (t Type) Kind() Kind {
	return t.kind
}

func (t Type) Name() string {
	return t.name
}

// IsZero reports whether t is the "no value" type used by boolean flags.
func (t Type) IsZero() bool {
	return t.kind == KindInvalid
}

func (t Type) String() string {
	if t.IsZero() {
		return "none"
	}

	return t.name
}
