package builtin

import (
	"context"
	"strings"

	"github.com/mwantia/commands/args"
	"github.com/mwantia/commands/command"
)

const maxSayTimes = 10

type SayCommand struct {
	command.Base

	manager *command.Manager
	spec    args.Spec
}

func NewSayCommand(m *command.Manager) *SayCommand {
	return &SayCommand{
		Base:    command.NewBase("say"),
		manager: m,
		spec: args.Spec{
			Required: []args.Type{args.String},
			Optional: []args.Option{
				{Type: args.String, Short: 'c', Long: "color"},
				{Type: args.Int32, Short: 'n', Long: "times"},
				{Short: 'l', Long: "loud"},
			},
		},
	}
}

func (*SayCommand) Description() string {
	return "repeats a message"
}

func (s *SayCommand) Usage(actor command.Actor) string {
	return s.spec.Usage(s.Name())
}

func (s *SayCommand) Handle(ctx context.Context, actor command.Actor, prejoined bool, tokens ...string) error {
	parsed, err := s.manager.Parse(s.spec, prejoined, tokens)
	if err != nil {
		return usageError(s, actor, err)
	}
	if parsed.Len() == 0 || !parsed.At(0).Valid() {
		return usageError(s, actor, nil)
	}
	s.Handled(s, actor, parsed, prejoined, tokens)

	message := args.Get[string](parsed, 0)
	if parsed.Has('l', "loud") {
		message = strings.ToUpper(message) + "!"
	}
	if color, ok := args.Lookup[string](parsed, "color"); ok {
		message = "[" + color + "] " + message
	}

	times := int32(1)
	if n, ok := args.Lookup[int32](parsed, "times"); ok {
		times = n
	}
	if times < 1 || times > maxSayTimes {
		return command.NewHandleError("times must be between 1 and {max}, got {times}", map[string]any{
			"max":   maxSayTimes,
			"times": times,
		}, nil)
	}

	for range times {
		command.Reply(ctx, actor, "%s", message)
	}

	return nil
}

func (s *SayCommand) Autocomplete(actor command.Actor, prejoined bool, tokens []string, pos *command.Position) []string {
	return completeOptions(tokens, "--color", "--loud", "--times")
}
