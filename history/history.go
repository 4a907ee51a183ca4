// Package history records command invocations so they can be listed again,
// newest first.
package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one dispatched command line.
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Command string    `json:"command"`
	Tokens  []string  `json:"tokens"`
	Actor   string    `json:"actor,omitempty"`
	Time    time.Time `json:"time"`
	Error   string    `json:"error,omitempty"`
}

// NewEntry stamps an invocation with a time-ordered ID and the current time.
func NewEntry(command string, tokens []string, actor string) Entry {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return Entry{
		ID:      id,
		Command: strings.ToLower(command),
		Tokens:  append([]string(nil), tokens...),
		Actor:   actor,
		Time:    time.Now().UTC(),
	}
}

// Line renders the invocation as it was typed.
func (e Entry) Line() string {
	return strings.Join(append([]string{e.Command}, e.Tokens...), " ")
}

// Failed reports whether the invocation returned an error.
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Store persists entries. List returns the newest entries first, keeping
// only commands whose ID starts with prefix; a limit <= 0 returns all.
type Store interface {
	// Name returns the identifier name defined for this store
	Name() string

	// Open is part of the lifecycle behaviour and gets called before first use.
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and releases every resource.
	Close(ctx context.Context) error

	Append(ctx context.Context, entry Entry) error

	List(ctx context.Context, prefix string, limit int) ([]Entry, error)
}

// Matches reports whether entry belongs to a List call for prefix.
func Matches(entry Entry, prefix string) bool {
	return strings.HasPrefix(entry.Command, strings.ToLower(prefix))
}
