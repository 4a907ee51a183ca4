// Package data holds the structured values that commands accept as brace
// literals, e.g. `{"name": "Steve", "pos": [1, 64, 1]}`.
package data

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"
	"github.com/tidwall/jsonc"
)

var ErrNotObject = errors.New("commands: structured literal must be an object")

// Decoder turns a literal into a Data value. Parsers accept any Decoder so
// hosts can plug in their own formats.
type Decoder func(literal string) (*Data, error)

// Data is a decoded object that keeps its keys in literal order.
type Data struct {
	values *orderedmap.OrderedMap
}

// New returns an empty object.
func New() *Data {
	values := orderedmap.New()
	values.SetEscapeHTML(false)

	return &Data{values: values}
}

// Decode is the default Decoder. Comments and trailing commas are accepted.
func Decode(literal string) (*Data, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON([]byte(literal)))
	if len(stripped) == 0 || stripped[0] != '{' {
		return nil, fmt.Errorf("%w: %q", ErrNotObject, literal)
	}

	d := New()
	if err := json.Unmarshal(stripped, d.values); err != nil {
		return nil, fmt.Errorf("commands: decoding structured literal: %w", err)
	}

	return d, nil
}

func (d *Data) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}

	value, ok := d.values.Get(key)
	if !ok {
		return nil, false
	}

	return plain(value), true
}

func (d *Data) Set(key string, value any) {
	d.values.Set(key, value)
}

func (d *Data) Keys() []string {
	if d == nil {
		return nil
	}

	return d.values.Keys()
}

func (d *Data) Len() int {
	if d == nil {
		return 0
	}

	return len(d.values.Keys())
}

// Map converts the object and every nested object into plain Go maps.
func (d *Data) Map() map[string]any {
	if d == nil {
		return nil
	}

	return toMap(d.values)
}

func (d *Data) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}

	return d.values.MarshalJSON()
}

// String renders the object as compact JSON in key order.
func (d *Data) String() string {
	raw, err := d.MarshalJSON()
	if err != nil {
		return "{}"
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}

	return buf.String()
}

func toMap(values *orderedmap.OrderedMap) map[string]any {
	out := make(map[string]any, len(values.Keys()))
	for _, key := range values.Keys() {
		value, _ := values.Get(key)
		out[key] = plain(value)
	}

	return out
}

// plain unwraps nested ordered maps, which the decoder stores by value.
func plain(value any) any {
	switch v := value.(type) {
	case orderedmap.OrderedMap:
		return toMap(&v)
	case *orderedmap.OrderedMap:
		return toMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
