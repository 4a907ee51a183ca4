package log

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("commands", Warn, WithOutput(&buf), WithoutColor())

	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	logger.Warn("visible %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("Expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN  [commands] visible 3") {
		t.Fatalf("Unexpected output: %q", out)
	}
}

func TestLogger_Named(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("commands", Debug, WithOutput(&buf), WithoutColor())

	logger.Named("manager").Info("registered %s", "help")

	if !strings.Contains(buf.String(), "[commands/manager] registered help") {
		t.Fatalf("Unexpected output: %q", buf.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("console", Info, WithOutput(&buf), WithJSON())

	logger.Error("failed: %s", "boom")

	var entry logEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if entry.Level != "ERROR" || entry.Logger != "console" || entry.Message != "failed: boom" {
		t.Fatalf("Unexpected entry: %+v", entry)
	}
}

func TestLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("", Debug, WithOutput(&buf), WithoutColor())

	code := -1
	logger.exit = func(c int) { code = c }
	logger.Fatal("stop")

	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   Debug,
		"INFO":    Info,
		"warning": Warn,
		"Error":   Error,
		"fatal":   Fatal,
		"":        Info,
	}

	for input, want := range tests {
		got, err := ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("Expected error for unknown level")
	}
}

func TestLogLevel_Color(t *testing.T) {
	if Error.Color() == Info.Color() {
		t.Fatalf("Expected levels to use distinct colors")
	}
	if LogLevel(42).Color() != colorReset {
		t.Fatalf("Expected unknown level to reset color")
	}
}
