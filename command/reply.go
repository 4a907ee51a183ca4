package command

import (
	"context"
	"fmt"
	"io"
	"os"
)

type outputKey struct{}

// WithOutput sets where replies to the anonymous console are written.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// Output returns the writer set by WithOutput, or stdout.
func Output(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// Reply sends a formatted message to actor, or to the context's output for
// the anonymous console.
func Reply(ctx context.Context, actor Actor, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if actor != nil {
		actor.Send(message)
		return
	}

	fmt.Fprintln(Output(ctx), message)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}
