package history_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/commands/history"
	"github.com/mwantia/commands/history/consul"
	"github.com/mwantia/commands/history/memory"
	"github.com/mwantia/commands/history/postgres"
	"github.com/mwantia/commands/history/sqlite"
)

// TestStoreFactory creates a new, empty store instance for testing.
type TestStoreFactory func(t *testing.T) (history.Store, error)

// GetTestStoreFactories returns every store implementation to test. Stores
// backed by external services only run when their address is configured.
func GetTestStoreFactories(t *testing.T) map[string]TestStoreFactory {
	factories := map[string]TestStoreFactory{
		"memory": func(t *testing.T) (history.Store, error) {
			return memory.NewMemoryStore(0), nil
		},
		"sqlite": func(t *testing.T) (history.Store, error) {
			return sqlite.NewSQLiteStore(":memory:")
		},
	}

	if conn := os.Getenv("COMMANDS_TEST_POSTGRES"); conn != "" {
		factories["postgres"] = func(t *testing.T) (history.Store, error) {
			store, err := postgres.NewPostgresStore(t.Context(), conn)
			if err != nil {
				return nil, err
			}
			// Tables are shared between runs
			if err := store.Truncate(t.Context()); err != nil {
				return nil, err
			}
			return store, nil
		}
	}

	if addr := os.Getenv("COMMANDS_TEST_CONSUL"); addr != "" {
		factories["consul"] = func(t *testing.T) (history.Store, error) {
			return consul.NewConsulStore(&consul.ConsulStoreConfig{
				Address: addr,
				Prefix:  "commands-test/" + uuid.NewString(),
			})
		}
	}

	return factories
}

func appendAll(ctx context.Context, store history.Store, lines ...[]string) error {
	for _, line := range lines {
		entry := history.NewEntry(line[0], line[1:], "console")
		if err := store.Append(ctx, entry); err != nil {
			return err
		}
		// IDs are time-ordered at millisecond precision in some stores
		time.Sleep(2 * time.Millisecond)
	}

	return nil
}

func TestAllStores_AppendList(t *testing.T) {
	for name, factory := range GetTestStoreFactories(t) {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()

			store, err := factory(tst)
			if err != nil {
				tst.Fatalf("Store init failed: %v", err)
			}
			defer store.Close(ctx)

			if err := store.Open(ctx); err != nil {
				tst.Fatalf("Open failed: %v", err)
			}

			err = appendAll(ctx, store,
				[]string{"say", "hello"},
				[]string{"help"},
				[]string{"Say", `"big`, `world"`},
			)
			if err != nil {
				tst.Fatalf("Append failed: %v", err)
			}

			entries, err := store.List(ctx, "", 0)
			if err != nil {
				tst.Fatalf("List failed: %v", err)
			}
			if len(entries) != 3 {
				tst.Fatalf("Expected 3 entries, got %d", len(entries))
			}

			if got := entries[0].Line(); got != `say "big world"` {
				tst.Fatalf("Expected newest entry first, got %q", got)
			}
			if entries[2].Command != "say" || entries[2].Tokens[0] != "hello" {
				tst.Fatalf("Unexpected oldest entry %+v", entries[2])
			}
			if entries[0].Actor != "console" {
				tst.Fatalf("Expected actor to round trip, got %q", entries[0].Actor)
			}
		})
	}
}

func TestAllStores_PrefixAndLimit(t *testing.T) {
	for name, factory := range GetTestStoreFactories(t) {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()

			store, err := factory(tst)
			if err != nil {
				tst.Fatalf("Store init failed: %v", err)
			}
			defer store.Close(ctx)

			err = appendAll(ctx, store,
				[]string{"say", "one"},
				[]string{"help"},
				[]string{"say", "two"},
				[]string{"say", "three"},
			)
			if err != nil {
				tst.Fatalf("Append failed: %v", err)
			}

			entries, err := store.List(ctx, "SA", 2)
			if err != nil {
				tst.Fatalf("List failed: %v", err)
			}
			if len(entries) != 2 {
				tst.Fatalf("Expected 2 entries, got %d", len(entries))
			}
			if entries[0].Tokens[0] != "three" || entries[1].Tokens[0] != "two" {
				tst.Fatalf("Unexpected entries %v, %v", entries[0].Line(), entries[1].Line())
			}

			none, err := store.List(ctx, "inspect", 0)
			if err != nil {
				tst.Fatalf("List failed: %v", err)
			}
			if len(none) != 0 {
				tst.Fatalf("Expected no entries, got %d", len(none))
			}
		})
	}
}

func TestAllStores_Error(t *testing.T) {
	for name, factory := range GetTestStoreFactories(t) {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()

			store, err := factory(tst)
			if err != nil {
				tst.Fatalf("Store init failed: %v", err)
			}
			defer store.Close(ctx)

			entry := history.NewEntry("say", nil, "")
			entry.Error = "args: errors with command: too many arguments"
			if err := store.Append(ctx, entry); err != nil {
				tst.Fatalf("Append failed: %v", err)
			}

			entries, err := store.List(ctx, "", 0)
			if err != nil {
				tst.Fatalf("List failed: %v", err)
			}
			if len(entries) != 1 || !entries[0].Failed() {
				tst.Fatalf("Expected failed entry, got %+v", entries)
			}
			if entries[0].ID != entry.ID {
				tst.Fatalf("Expected ID %s, got %s", entry.ID, entries[0].ID)
			}
			if len(entries[0].Tokens) != 0 || entries[0].Actor != "" {
				tst.Fatalf("Expected empty tokens and actor, got %+v", entries[0])
			}
			if !entries[0].Time.Equal(entry.Time.Truncate(time.Microsecond)) && !entries[0].Time.Equal(entry.Time) {
				tst.Fatalf("Expected time %v, got %v", entry.Time, entries[0].Time)
			}
		})
	}
}

func TestMemoryStore_Capacity(t *testing.T) {
	ctx := t.Context()
	store := memory.NewMemoryStore(2)

	if err := appendAll(ctx, store, []string{"a"}, []string{"b"}, []string{"c"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Command != "c" || entries[1].Command != "b" {
		t.Fatalf("Expected oldest entry to be evicted, got %v", entries)
	}
}

func TestSQLiteStore_Persistent(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := sqlite.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Store init failed: %v", err)
	}
	if err := appendAll(ctx, store, []string{"say", "persisted"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := sqlite.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Store reopen failed: %v", err)
	}
	defer reopened.Close(ctx)

	entries, err := reopened.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Line() != "say persisted" {
		t.Fatalf("Expected persisted entry, got %v", entries)
	}
}
