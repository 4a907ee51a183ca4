package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes levelled messages for the command layer. Children created
// with Named share the parent's writer.
type Logger struct {
	mu     *sync.Mutex
	writer io.Writer
	exit   func(int)

	Name  string
	Level LogLevel

	TimeFormat string
	File       string
	NoColor    bool
	JSON       bool
	NoTerminal bool
	Rotation   *LoggerRotation
}

type LoggerRotation struct {
	MaxSize    int  `yaml:"max_size"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"`
	Compress   bool `yaml:"compress"`
}

type LoggerOption func(*Logger)

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Logger    string `json:"logger,omitempty"`
	Message   string `json:"message"`
}

// WithFile additionally writes to a rotated log file.
func WithFile(file string) LoggerOption {
	return func(l *Logger) {
		l.File = file
	}
}

func WithoutTerminal() LoggerOption {
	return func(l *Logger) {
		l.NoTerminal = true
	}
}

func WithoutColor() LoggerOption {
	return func(l *Logger) {
		l.NoColor = true
	}
}

func WithJSON() LoggerOption {
	return func(l *Logger) {
		l.JSON = true
	}
}

func WithRotation(rotation LoggerRotation) LoggerOption {
	return func(l *Logger) {
		l.Rotation = &rotation
	}
}

// WithOutput replaces the terminal writer, mostly useful for tests.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.writer = w
	}
}

func NewLogger(name string, level LogLevel, opts ...LoggerOption) *Logger {
	l := &Logger{
		mu:    &sync.Mutex{},
		exit:  os.Exit,
		Name:  name,
		Level: level,

		TimeFormat: "2006-01-02 15:04:05",
		Rotation: &LoggerRotation{
			MaxSize:    64,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   false,
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.setupWriter()

	return l
}

// Discard returns a logger that drops every message.
func Discard() *Logger {
	return NewLogger("", Fatal+1, WithOutput(io.Discard), WithoutColor())
}

func (l *Logger) setupWriter() {
	var writers []io.Writer

	if l.writer != nil {
		writers = append(writers, l.writer)
	} else if !l.NoTerminal {
		writers = append(writers, os.Stdout)
	}

	if l.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		}
		writers = append(writers, fileWriter)
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if l == nil || level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formattedMsg := fmt.Sprintf(msg, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Logger:    l.Name,
			Message:   formattedMsg,
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", jsonBytes)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.Name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.Name)
		}

		if !l.NoTerminal && !l.NoColor {
			fmt.Fprintf(l.writer, "%s%s %s%s\n", level.Color(), prefix, formattedMsg, colorReset)
		} else {
			fmt.Fprintf(l.writer, "%s %s\n", prefix, formattedMsg)
		}
	}

	if level == Fatal {
		l.exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

// Named returns a child logger whose name is appended to the parent's.
func (l *Logger) Named(name string) *Logger {
	child := *l
	if l.Name != "" {
		child.Name = fmt.Sprintf("%s/%s", l.Name, name)
	} else {
		child.Name = name
	}

	return &child
}
