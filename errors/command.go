package errors

import "errors"

var (
	ErrCommandNotFound      = errors.New("command not found")
	ErrCommandExists        = errors.New("command already registered")
	ErrRegistrationCanceled = errors.New("registration canceled")
	ErrInvalidCommand       = errors.New("invalid command")
	ErrHistoryUnavailable   = errors.New("history unavailable")
)

// CommandNotFound reports an unknown command name. A non-empty suggestion
// is appended as a hint.
func CommandNotFound(name, suggestion string) error {
	if suggestion != "" {
		return newError(ErrCommandNotFound, nil, "'%s' (did you mean '%s'?)", name, suggestion)
	}

	return newError(ErrCommandNotFound, nil, "'%s'", name)
}

func CommandExists(name string) error {
	return newError(ErrCommandExists, nil, "'%s'", name)
}

func RegistrationCanceled(name, reason string) error {
	if reason != "" {
		return newError(ErrRegistrationCanceled, nil, "'%s' (%s)", name, reason)
	}

	return newError(ErrRegistrationCanceled, nil, "'%s'", name)
}

func InvalidCommand(err error, reason string) error {
	return newError(ErrInvalidCommand, err, "%s", reason)
}

func HistoryUnavailable(err error, backend string) error {
	return newError(ErrHistoryUnavailable, err, "backend '%s'", backend)
}
