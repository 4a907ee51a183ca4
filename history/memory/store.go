package memory

import (
	"context"
	"sync"

	"github.com/mwantia/commands/history"
	"github.com/tidwall/btree"
)

// MemoryStore keeps entries in a B-tree keyed by insertion sequence. When a
// capacity is set, the oldest entries are evicted first.
type MemoryStore struct {
	mu       sync.RWMutex
	seq      uint64
	capacity int
	entries  *btree.Map[uint64, history.Entry]
}

// NewMemoryStore creates a store holding at most capacity entries; zero
// means unbounded.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		capacity: capacity,
		entries:  btree.NewMap[uint64, history.Entry](0),
	}
}

// Returns the identifier name defined for this store
func (*MemoryStore) Name() string {
	return "memory"
}

func (*MemoryStore) Open(ctx context.Context) error {
	return nil
}

func (ms *MemoryStore) Close(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries.Clear()
	return nil
}

func (ms *MemoryStore) Append(ctx context.Context, entry history.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.seq++
	ms.entries.Set(ms.seq, entry)

	for ms.capacity > 0 && ms.entries.Len() > ms.capacity {
		oldest, _, ok := ms.entries.Min()
		if !ok {
			break
		}
		ms.entries.Delete(oldest)
	}

	return nil
}

func (ms *MemoryStore) List(ctx context.Context, prefix string, limit int) ([]history.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entries := make([]history.Entry, 0)
	ms.entries.Reverse(func(_ uint64, entry history.Entry) bool {
		if history.Matches(entry, prefix) {
			entries = append(entries, entry)
		}
		return limit <= 0 || len(entries) < limit
	})

	return entries, nil
}
