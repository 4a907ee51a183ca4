// console is an interactive shell over a command Manager with the builtin
// commands registered.
//
// Lines are split on whitespace and quotes and braces are resolved by each
// command's parser. With --shell, lines are split using shell quoting and
// handed to commands as prejoined tokens. A line starting with '?' prints
// completions for the rest of the line.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/shlex"
	"github.com/mwantia/commands/command"
	"github.com/mwantia/commands/command/builtin"
	"github.com/mwantia/commands/config"
	"github.com/mwantia/commands/log"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var logLevel string
	var historyBackend string
	var execLine string
	var shell bool

	flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flagSet.StringVar(&logLevel, "log-level", "", "override the configured log level")
	flagSet.StringVar(&historyBackend, "history", "", "override the history backend (none, memory, sqlite, postgres, consul)")
	flagSet.StringVarP(&execLine, "exec", "e", "", "run a single command line and exit")
	flagSet.BoolVar(&shell, "shell", false, "split lines with shell quoting rules")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if flagSet.Changed("log-level") {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		cfg.Log.Level = level
	}
	if flagSet.Changed("history") {
		cfg.History.Backend = historyBackend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if flagSet.Changed("shell") {
		cfg.Console.Shell = shell
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cfg.Log.Logger("console")

	store, err := cfg.History.Open(ctx)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	opts := []command.ManagerOption{command.WithLogger(logger)}
	if store != nil {
		defer store.Close(context.Background())
		opts = append(opts, command.WithHistory(store))
		logger.Debug("Recording history in %s", store.Name())
	}

	manager := command.NewManager(opts...)
	if err := builtin.Register(manager); err != nil {
		return err
	}

	console := &console{
		manager: manager,
		log:     logger,
		shell:   cfg.Console.Shell,
		out:     os.Stdout,
	}

	if flagSet.Changed("exec") {
		return console.line(ctx, execLine)
	}

	return console.loop(ctx, os.Stdin, cfg.Console.Prompt)
}

type console struct {
	manager *command.Manager
	log     *log.Logger
	shell   bool
	out     io.Writer
}

func (c *console) loop(ctx context.Context, in io.Reader, prompt string) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(c.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := c.line(ctx, text); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *console) line(ctx context.Context, text string) error {
	if rest, ok := strings.CutPrefix(text, "?"); ok {
		tokens, err := c.split(rest)
		if err != nil {
			return err
		}
		// A trailing space starts a new, empty token
		if strings.HasSuffix(rest, " ") || len(tokens) == 0 {
			tokens = append(tokens, "")
		}

		for _, suggestion := range c.manager.Autocomplete(nil, c.shell, tokens, nil) {
			fmt.Fprintln(c.out, suggestion)
		}
		return nil
	}

	tokens, err := c.split(text)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	return c.manager.Execute(command.WithOutput(ctx, c.out), nil, c.shell, tokens...)
}

func (c *console) split(text string) ([]string, error) {
	if c.shell {
		return shlex.Split(text)
	}

	return strings.Fields(text), nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: console [flags]\n\n")
	flagSet.PrintDefaults()
}
