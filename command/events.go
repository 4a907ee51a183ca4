package command

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/commands/args"
	"github.com/tidwall/btree"
)

// Event is delivered to the listeners of a command's channel.
type Event interface {
	EventID() uuid.UUID
}

type Listener func(Event)

// HandleEvent is published by a command once its arguments are parsed.
type HandleEvent struct {
	ID        uuid.UUID
	Command   Command
	Actor     Actor
	Args      *args.Args
	Prejoined bool
	Tokens    []string
}

func NewHandleEvent(cmd Command, actor Actor, parsed *args.Args, prejoined bool, tokens []string) HandleEvent {
	return HandleEvent{
		ID:        uuid.New(),
		Command:   cmd,
		Actor:     actor,
		Args:      parsed,
		Prejoined: prejoined,
		Tokens:    append([]string(nil), tokens...),
	}
}

func (e HandleEvent) EventID() uuid.UUID {
	return e.ID
}

// ExecuteEvent is published by the Manager after every dispatch.
type ExecuteEvent struct {
	ID       uuid.UUID
	Command  Command
	Actor    Actor
	Tokens   []string
	Err      error
	Duration time.Duration
}

func (e ExecuteEvent) EventID() uuid.UUID {
	return e.ID
}

// Events is a synchronous, per-command event channel. Listeners run on the
// publishing goroutine in subscription order.
type Events struct {
	mu        sync.RWMutex
	next      uint64
	listeners *btree.Map[uint64, Listener]
}

func NewEvents() *Events {
	return &Events{
		listeners: btree.NewMap[uint64, Listener](0),
	}
}

// On subscribes fn and returns a function that removes it again.
func (e *Events) On(fn Listener) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	id := e.next
	e.listeners.Set(id, fn)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		e.listeners.Delete(id)
	}
}

func (e *Events) Publish(event Event) {
	e.mu.RLock()
	listeners := make([]Listener, 0, e.listeners.Len())
	e.listeners.Scan(func(_ uint64, fn Listener) bool {
		listeners = append(listeners, fn)
		return true
	})
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}
}

func (e *Events) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.listeners.Len()
}
