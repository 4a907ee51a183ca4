package command

import (
	"maps"
	"slices"
	"strings"
)

// HandleError is returned by commands that fail while handling. Message may
// reference Params as "{name}".
type HandleError struct {
	Message string
	Params  map[string]any
	Cause   error
}

func NewHandleError(message string, params map[string]any, cause error) *HandleError {
	return &HandleError{
		Message: message,
		Params:  params,
		Cause:   cause,
	}
}

// Text returns Message with its parameters filled in.
func (e *HandleError) Text() string {
	if len(e.Params) == 0 {
		return e.Message
	}

	pairs := make([]string, 0, 2*len(e.Params))
	for _, key := range slices.Sorted(maps.Keys(e.Params)) {
		pairs = append(pairs, "{"+key+"}", toString(e.Params[key]))
	}

	return strings.NewReplacer(pairs...).Replace(e.Message)
}

func (e *HandleError) Error() string {
	if e.Cause != nil {
		return e.Text() + ": " + e.Cause.Error()
	}

	return e.Text()
}

func (e *HandleError) Unwrap() error {
	return e.Cause
}
