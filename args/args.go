package args

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Args is the immutable result of a successful parse: positional values in
// declaration order plus optional values keyed by long and short name.
type Args struct {
	positional []Value
	long       map[string]Value
	short      map[rune]Value
}

var empty = &Args{
	long:  map[string]Value{},
	short: map[rune]Value{},
}

// Empty returns the container produced by parsing zero tokens.
func Empty() *Args {
	return empty
}

// New copies its inputs into a fresh container. Long names are normalised
// the same way option declarations are.
func New(positional []Value, long map[string]Value, short map[rune]Value) *Args {
	a := &Args{
		positional: slices.Clone(positional),
		long:       make(map[string]Value, len(long)),
		short:      make(map[rune]Value, len(short)),
	}
	if a.positional == nil {
		a.positional = []Value{}
	}

	for k, v := range long {
		a.long[kebab(k)] = v
	}
	for k, v := range short {
		a.short[unicode.ToLower(k)] = v
	}

	return a
}

// Of builds a container holding only positional values.
func Of(positional ...Value) *Args {
	return New(positional, nil, nil)
}

// At returns the positional value at index. Indexing past Len panics.
func (a *Args) At(index int) Value {
	return a.positional[index]
}

// Long returns the optional value stored under a long name.
func (a *Args) Long(name string) (Value, bool) {
	if v, ok := a.long[kebab(name)]; ok {
		return v, true
	}
	key := foldName(name)
	if key == "" {
		return Value{}, false
	}
	for k, v := range a.long {
		if foldName(k) == key {
			return v, true
		}
	}
	return Value{}, false
}

// Short returns the optional value stored under a short name.
func (a *Args) Short(name rune) (Value, bool) {
	v, ok := a.short[unicode.ToLower(name)]
	return v, ok
}

// Has reports whether the option was given under either name.
func (a *Args) Has(short rune, long string) bool {
	if _, ok := a.Short(short); ok && short != 0 {
		return true
	}
	if _, ok := a.Long(long); ok && long != "" {
		return true
	}

	return false
}

func (a *Args) Len() int {
	return len(a.positional)
}

// All iterates the positional values. Every call starts from the first.
func (a *Args) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range a.positional {
			if !yield(v) {
				return
			}
		}
	}
}

// Values returns a copy of the positional values.
func (a *Args) Values() []Value {
	return slices.Clone(a.positional)
}

// Equal reports structural equality. Anything that is not an Args is never
// equal.
func (a *Args) Equal(other any) bool {
	var b *Args
	switch o := other.(type) {
	case *Args:
		b = o
	case Args:
		b = &o
	default:
		return false
	}

	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	return string(a.encode()) == string(b.encode())
}

// String renders the arguments back into a command line. Conversion is
// lossy, so the result only approximates the original input.
func (a *Args) String() string {
	parts := make([]string, 0, len(a.positional)+len(a.long)+len(a.short))

	for _, v := range a.positional {
		if v.Valid() {
			parts = append(parts, v.String())
		}
	}

	for _, name := range slices.Sorted(maps.Keys(a.long)) {
		parts = append(parts, "--"+name+"="+a.long[name].String())
	}

	for _, name := range slices.Sorted(maps.Keys(a.short)) {
		v := a.short[name]
		if a.renderedAsLong(v) {
			continue
		}
		parts = append(parts, "-"+string(name)+" "+v.String())
	}

	return strings.Join(parts, " ")
}

func (a *Args) renderedAsLong(v Value) bool {
	for _, other := range a.long {
		if other.Equal(v) {
			return true
		}
	}

	return false
}

// Get returns the positional value at index as T, panicking on a type
// mismatch or an index past Len.
func Get[T any](a *Args, index int) T {
	return As[T](a.At(index))
}

// Lookup returns the optional value stored under a long name as T.
func Lookup[T any](a *Args, name string) (T, bool) {
	v, ok := a.Long(name)
	if !ok {
		var zero T
		return zero, false
	}

	return TryAs[T](v)
}

// LookupShort returns the optional value stored under a short name as T.
func LookupShort[T any](a *Args, name rune) (T, bool) {
	v, ok := a.Short(name)
	if !ok {
		var zero T
		return zero, false
	}

	return TryAs[T](v)
}
