package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwantia/commands/command"
	"github.com/mwantia/commands/command/builtin"
	"github.com/mwantia/commands/history/memory"
	"github.com/mwantia/commands/log"
)

func newConsole(t *testing.T, shell bool) (*console, *bytes.Buffer) {
	t.Helper()

	var out, logs bytes.Buffer
	logger := log.NewLogger("console", log.Debug, log.WithOutput(&logs), log.WithoutColor())

	manager := command.NewManager(
		command.WithLogger(logger),
		command.WithHistory(memory.NewMemoryStore(0)),
	)
	if err := builtin.Register(manager); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	return &console{manager: manager, log: logger, shell: shell, out: &out}, &out
}

func TestConsole_Loop(t *testing.T) {
	c, out := newConsole(t, false)

	input := strings.NewReader("say \"hello world\" -l\n\nnope\nexit\nsay unreachable\n")
	if err := c.loop(t.Context(), input, "> "); err != nil {
		t.Fatalf("loop failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "HELLO WORLD!\n") {
		t.Fatalf("Expected say output, got %q", text)
	}
	if !strings.Contains(text, "error: commands: 'nope': command not found") {
		t.Fatalf("Expected unknown command error, got %q", text)
	}
	if strings.Contains(text, "unreachable") {
		t.Fatalf("Expected loop to stop at exit, got %q", text)
	}
}

func TestConsole_Shell(t *testing.T) {
	c, out := newConsole(t, true)

	if err := c.line(t.Context(), `say 'two words' --color "light blue"`); err != nil {
		t.Fatalf("line failed: %v", err)
	}
	if !strings.Contains(out.String(), "[light blue] two words\n") {
		t.Fatalf("Unexpected output %q", out.String())
	}

	if err := c.line(t.Context(), `say 'unterminated`); err == nil {
		t.Fatalf("Expected shell split error")
	}
}

func TestConsole_Complete(t *testing.T) {
	c, out := newConsole(t, false)

	if err := c.line(t.Context(), "?h"); err != nil {
		t.Fatalf("line failed: %v", err)
	}
	if got := out.String(); got != "help\nhistory\n" {
		t.Fatalf("Unexpected completions %q", got)
	}

	out.Reset()
	if err := c.line(t.Context(), "?say hi --"); err != nil {
		t.Fatalf("line failed: %v", err)
	}
	if got := out.String(); got != "--color\n--loud\n--times\n" {
		t.Fatalf("Unexpected completions %q", got)
	}
}
