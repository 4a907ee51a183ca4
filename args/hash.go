package args

import (
	"encoding/binary"
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/fxamacker/cbor/v2"
	"github.com/mwantia/commands/data"
	"github.com/zeebo/blake3"
)

// encMode uses Core Deterministic Encoding so equal arguments always
// produce identical bytes, independent of map iteration order.
var encMode cbor.EncMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("args: CBOR encoder initialization failed: " + err.Error())
	}
}

func canonicalBytes(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// canonical reduces a value to plain CBOR-encodable data. External payloads
// are compared through their rendered form.
func (v Value) canonical() any {
	var payload any

	switch p := v.payload.(type) {
	case nil:
		payload = nil
	case *big.Int:
		payload = p.String()
	case *apd.Decimal:
		payload = p.String()
	case *data.Data:
		payload = p.Map()
	default:
		if v.typ.kind == KindExternal {
			payload = v.String()
		} else {
			payload = p
		}
	}

	return []any{uint8(v.typ.kind), v.typ.name, payload}
}

func (a *Args) canonical() any {
	positional := make([]any, len(a.positional))
	for i, v := range a.positional {
		positional[i] = v.canonical()
	}

	long := make(map[string]any, len(a.long))
	for k, v := range a.long {
		long[k] = v.canonical()
	}

	short := make(map[string]any, len(a.short))
	for k, v := range a.short {
		short[string(k)] = v.canonical()
	}

	return []any{positional, long, short}
}

func (a *Args) encode() []byte {
	b, err := canonicalBytes(a.canonical())
	if err != nil {
		// Only reachable with payloads cbor rejects, which canonical
		// never produces.
		panic("args: encoding arguments failed: " + err.Error())
	}

	return b
}

// Hash returns a structural hash: equal Args always hash equal.
func (a *Args) Hash() uint64 {
	sum := blake3.Sum256(a.encode())
	return binary.BigEndian.Uint64(sum[:8])
}
