// Package builtin provides the commands every console starts with.
package builtin

import (
	"strings"

	"github.com/mwantia/commands/command"
	"github.com/mwantia/commands/errors"
)

// Register adds every builtin command to m. The history command is only
// added when m records history. All registrations are attempted.
func Register(m *command.Manager) error {
	cmds := []command.Command{
		NewHelpCommand(m),
		NewSayCommand(m),
		NewInspectCommand(m),
	}
	if m.History() != nil {
		cmds = append(cmds, NewHistoryCommand(m))
	}

	var errs errors.Errors
	for _, cmd := range cmds {
		_, err := m.Register(cmd)
		errs.Add(err)
	}

	return errs.Errors()
}

func usageError(cmd command.Command, actor command.Actor, err error) error {
	return command.NewHandleError("usage: {usage}", map[string]any{
		"usage": cmd.Usage(actor),
	}, err)
}

// completeOptions suggests option names for a last token that starts with
// a dash.
func completeOptions(tokens []string, names ...string) []string {
	if len(tokens) == 0 {
		return nil
	}

	last := tokens[len(tokens)-1]
	if !strings.HasPrefix(last, "-") {
		return nil
	}

	matches := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, strings.ToLower(last)) {
			matches = append(matches, name)
		}
	}

	return matches
}
