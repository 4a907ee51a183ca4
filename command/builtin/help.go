package builtin

import (
	"context"

	"github.com/mwantia/commands/args"
	"github.com/mwantia/commands/command"
)

type HelpCommand struct {
	command.Base

	manager *command.Manager
	spec    args.Spec
}

func NewHelpCommand(m *command.Manager) *HelpCommand {
	return &HelpCommand{
		Base:    command.NewBase("help"),
		manager: m,
		spec: args.Spec{
			Required: []args.Type{args.String},
		},
	}
}

func (*HelpCommand) Description() string {
	return "lists commands or shows the usage of one"
}

func (h *HelpCommand) Usage(actor command.Actor) string {
	return "help [command]"
}

func (h *HelpCommand) Handle(ctx context.Context, actor command.Actor, prejoined bool, tokens ...string) error {
	parsed, err := h.manager.Parse(h.spec, prejoined, tokens)
	if err != nil {
		return usageError(h, actor, err)
	}
	h.Handled(h, actor, parsed, prejoined, tokens)

	if parsed.Len() == 0 {
		for _, cmd := range h.manager.List() {
			if d, ok := cmd.(command.Describer); ok {
				command.Reply(ctx, actor, "%s - %s", cmd.Usage(actor), d.Description())
				continue
			}
			command.Reply(ctx, actor, "%s", cmd.Usage(actor))
		}
		return nil
	}

	cmd, err := h.manager.Get(args.Get[string](parsed, 0))
	if err != nil {
		return err
	}

	command.Reply(ctx, actor, "usage: %s", cmd.Usage(actor))
	return nil
}

// Autocomplete completes the command name.
func (h *HelpCommand) Autocomplete(actor command.Actor, prejoined bool, tokens []string, pos *command.Position) []string {
	if len(tokens) > 1 {
		return nil
	}

	return h.manager.Autocomplete(actor, prejoined, tokens, pos)
}
