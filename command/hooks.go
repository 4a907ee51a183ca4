package command

type decisionKind uint8

const (
	decisionProceed decisionKind = iota
	decisionReplace
	decisionCancel
)

// Decision is the outcome of a registration hook.
type Decision struct {
	kind    decisionKind
	command Command
	reason  string
}

// Proceed keeps the command as it is.
func Proceed() Decision {
	return Decision{kind: decisionProceed}
}

// Replace registers cmd instead. Later hooks see the replacement.
func Replace(cmd Command) Decision {
	return Decision{kind: decisionReplace, command: cmd}
}

// Cancel aborts the registration.
func Cancel(reason string) Decision {
	return Decision{kind: decisionCancel, reason: reason}
}

// Hook runs before a command is inserted into a Manager. Hooks are called
// without any Manager lock held, so they may register other commands.
type Hook func(cmd Command) Decision
