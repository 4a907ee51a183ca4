// Package command defines the command abstraction and the Manager that
// registers, looks up, completes and dispatches commands.
package command

import (
	"context"
	"strings"

	"github.com/mwantia/commands/args"
)

// Actor is whoever invoked a command. A nil Actor is the anonymous console.
type Actor interface {
	Name() string
	Send(message string)
}

// Position is an optional spatial hint passed to autocompletion.
type Position struct {
	X, Y, Z float64
}

// Command is a named, executable entry of a Manager.
type Command interface {
	// Name returns the display name. Case is preserved.
	Name() string

	// ID returns the lower-cased name used as the registry key.
	ID() string

	// Usage returns help text for actor, which may be nil.
	Usage(actor Actor) string

	// Handle runs the command. When prejoined is set, tokens were already
	// split on quotes and braces by the caller.
	Handle(ctx context.Context, actor Actor, prejoined bool, tokens ...string) error

	// Autocomplete suggests values for the last token.
	Autocomplete(actor Actor, prejoined bool, tokens []string, pos *Position) []string

	// Events returns the command's own event channel.
	Events() *Events
}

// Describer is implemented by commands with a one-line description.
type Describer interface {
	Description() string
}

// Base implements the bookkeeping part of Command. Embed it and provide
// Usage and Handle.
type Base struct {
	name   string
	events *Events
}

func NewBase(name string) Base {
	return Base{
		name:   name,
		events: NewEvents(),
	}
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) ID() string {
	return strings.ToLower(b.name)
}

func (b *Base) Events() *Events {
	return b.events
}

// Autocomplete suggests nothing.
func (b *Base) Autocomplete(actor Actor, prejoined bool, tokens []string, pos *Position) []string {
	return nil
}

// Handled publishes a HandleEvent for parsed arguments on the command's
// channel and returns it.
func (b *Base) Handled(cmd Command, actor Actor, parsed *args.Args, prejoined bool, tokens []string) HandleEvent {
	event := NewHandleEvent(cmd, actor, parsed, prejoined, tokens)
	b.events.Publish(event)

	return event
}

// ActorName returns the actor's name, or "" for the anonymous console.
func ActorName(actor Actor) string {
	if actor == nil {
		return ""
	}

	return actor.Name()
}
