package builtin

import (
	"context"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mwantia/commands/args"
	"github.com/mwantia/commands/command"
	"github.com/mwantia/commands/data"
)

// InspectCommand decodes a brace literal and prints its keys or one value.
type InspectCommand struct {
	command.Base

	manager *command.Manager
	spec    args.Spec
}

func NewInspectCommand(m *command.Manager) *InspectCommand {
	return &InspectCommand{
		Base:    command.NewBase("inspect"),
		manager: m,
		spec: args.Spec{
			Required: []args.Type{args.Data},
			Optional: []args.Option{
				{Type: args.String, Short: 'k', Long: "key"},
			},
		},
	}
}

func (*InspectCommand) Description() string {
	return "decodes a structured literal"
}

func (i *InspectCommand) Usage(actor command.Actor) string {
	return i.spec.Usage(i.Name())
}

func (i *InspectCommand) Handle(ctx context.Context, actor command.Actor, prejoined bool, tokens ...string) error {
	parsed, err := i.manager.Parse(i.spec, prejoined, tokens)
	if err != nil {
		return usageError(i, actor, err)
	}
	if parsed.Len() == 0 || !parsed.At(0).Valid() {
		return usageError(i, actor, nil)
	}
	i.Handled(i, actor, parsed, prejoined, tokens)

	d := args.Get[*data.Data](parsed, 0)

	key, ok := args.Lookup[string](parsed, "key")
	if !ok {
		command.Reply(ctx, actor, "%s", d.String())
		command.Reply(ctx, actor, "keys: %s", strings.Join(d.Keys(), ", "))
		return nil
	}

	value, ok := d.Get(key)
	if !ok {
		return command.NewHandleError("unknown key '{key}'", map[string]any{"key": key}, nil)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return command.NewHandleError("cannot render '{key}'", map[string]any{"key": key}, err)
	}

	command.Reply(ctx, actor, "%s = %s", key, raw)
	return nil
}

func (i *InspectCommand) Autocomplete(actor command.Actor, prejoined bool, tokens []string, pos *command.Position) []string {
	return completeOptions(tokens, "--key")
}
