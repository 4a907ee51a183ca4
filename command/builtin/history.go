package builtin

import (
	"context"

	"github.com/mwantia/commands/args"
	"github.com/mwantia/commands/command"
	"github.com/mwantia/commands/errors"
)

const defaultHistoryLimit = 10

type HistoryCommand struct {
	command.Base

	manager *command.Manager
	spec    args.Spec
}

func NewHistoryCommand(m *command.Manager) *HistoryCommand {
	return &HistoryCommand{
		Base:    command.NewBase("history"),
		manager: m,
		spec: args.Spec{
			Required: []args.Type{args.String},
			Optional: []args.Option{
				{Type: args.Int32, Short: 'n', Long: "limit"},
			},
		},
	}
}

func (*HistoryCommand) Description() string {
	return "lists recent commands, newest first"
}

func (h *HistoryCommand) Usage(actor command.Actor) string {
	return "history [prefix] [-n|--limit <int32>]"
}

func (h *HistoryCommand) Handle(ctx context.Context, actor command.Actor, prejoined bool, tokens ...string) error {
	store := h.manager.History()
	if store == nil {
		return errors.HistoryUnavailable(nil, "none")
	}

	parsed, err := h.manager.Parse(h.spec, prejoined, tokens)
	if err != nil {
		return usageError(h, actor, err)
	}
	h.Handled(h, actor, parsed, prejoined, tokens)

	prefix := ""
	if parsed.Len() > 0 && parsed.At(0).Valid() {
		prefix = args.Get[string](parsed, 0)
	}

	limit := defaultHistoryLimit
	if n, ok := args.Lookup[int32](parsed, "limit"); ok {
		limit = int(n)
	}

	entries, err := store.List(ctx, prefix, limit)
	if err != nil {
		return errors.HistoryUnavailable(err, store.Name())
	}

	for _, entry := range entries {
		line := entry.Time.Local().Format("15:04:05") + " " + entry.Line()
		if entry.Actor != "" {
			line += " (" + entry.Actor + ")"
		}
		if entry.Failed() {
			line += " failed: " + entry.Error
		}
		command.Reply(ctx, actor, "%s", line)
	}

	return nil
}

// Autocomplete completes command names for the prefix.
func (h *HistoryCommand) Autocomplete(actor command.Actor, prejoined bool, tokens []string, pos *command.Position) []string {
	if options := completeOptions(tokens, "--limit"); options != nil {
		return options
	}
	if len(tokens) > 1 {
		return nil
	}

	return h.manager.Autocomplete(actor, prejoined, tokens, pos)
}
