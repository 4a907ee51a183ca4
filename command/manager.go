package command

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/commands/args"
	"github.com/mwantia/commands/errors"
	"github.com/mwantia/commands/history"
	"github.com/mwantia/commands/log"
	"github.com/tidwall/btree"
)

type ManagerOption func(*Manager)

func WithLogger(logger *log.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = logger.Named("commands")
	}
}

// WithHistory records every dispatched command in store.
func WithHistory(store history.Store) ManagerOption {
	return func(m *Manager) {
		m.history = store
	}
}

// WithConverters sets the registry used to parse host-defined types.
func WithConverters(converters *args.Registry) ManagerOption {
	return func(m *Manager) {
		m.converters = converters
	}
}

// WithOverwrite lets a registration replace a command with the same ID
// instead of failing with ErrCommandExists.
func WithOverwrite() ManagerOption {
	return func(m *Manager) {
		m.overwrite = true
	}
}

// Manager handles command registration, lookup, completion and execution.
type Manager struct {
	mu       sync.RWMutex
	commands *btree.Map[string, Command]

	hooksMu sync.RWMutex
	hooks   []Hook

	log        *log.Logger
	converters *args.Registry
	history    history.Store
	overwrite  bool
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		commands:   btree.NewMap[string, Command](0),
		log:        log.Discard(),
		converters: args.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// OnRegister adds a hook that runs for every later registration.
func (m *Manager) OnRegister(hook Hook) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()

	m.hooks = append(m.hooks, hook)
}

// Register runs the registration hooks and inserts the resulting command.
// It returns the command that was actually registered.
func (m *Manager) Register(cmd Command) (Command, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	m.hooksMu.RLock()
	hooks := append([]Hook(nil), m.hooks...)
	m.hooksMu.RUnlock()

	for _, hook := range hooks {
		decision := hook(cmd)

		switch decision.kind {
		case decisionReplace:
			if err := validate(decision.command); err != nil {
				return nil, err
			}
			m.log.Debug("Registration of '%s' replaced by '%s'", cmd.Name(), decision.command.Name())
			cmd = decision.command

		case decisionCancel:
			m.log.Debug("Registration of '%s' canceled: %s", cmd.Name(), decision.reason)
			return nil, errors.RegistrationCanceled(cmd.Name(), decision.reason)
		}
	}

	id := cmd.ID()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.commands.Get(id); exists {
		if !m.overwrite {
			return nil, errors.CommandExists(id)
		}
		m.log.Warn("Overwriting command '%s'", id)
	}

	m.commands.Set(id, cmd)
	m.log.Debug("Registered command '%s'", id)

	return cmd, nil
}

// Unregister removes a registered command.
func (m *Manager) Unregister(name string) error {
	id := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, deleted := m.commands.Delete(id); !deleted {
		return errors.CommandNotFound(name, "")
	}

	m.log.Debug("Unregistered command '%s'", id)
	return nil
}

// Get returns a command by name, ignoring case. The error for an unknown
// name carries the closest registered command as a suggestion.
func (m *Manager) Get(name string) (Command, error) {
	if cmd, ok := m.lookup(name); ok {
		return cmd, nil
	}

	return nil, errors.CommandNotFound(name, m.Suggest(name))
}

func (m *Manager) lookup(name string) (Command, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.commands.Get(strings.ToLower(name))
}

// List returns all registered commands ordered by ID.
func (m *Manager) List() []Command {
	m.mu.RLock()
	defer m.mu.RUnlock()

	commands := make([]Command, 0, m.commands.Len())
	m.commands.Scan(func(_ string, cmd Command) bool {
		commands = append(commands, cmd)
		return true
	})

	return commands
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.commands.Len()
}

// Converters returns the registry commands should parse host-defined types
// with.
func (m *Manager) Converters() *args.Registry {
	return m.converters
}

// History returns the configured store, or nil.
func (m *Manager) History() history.Store {
	return m.history
}

// Parse runs spec against tokens with the manager's converters.
func (m *Manager) Parse(spec args.Spec, prejoined bool, tokens []string) (*args.Args, error) {
	spec.Prejoined = prejoined
	if spec.Converters == nil {
		spec.Converters = m.converters
	}

	return args.Parse(tokens, spec)
}

// Execute dispatches a command line: tokens[0] names the command and the
// rest are handed to it unchanged.
func (m *Manager) Execute(ctx context.Context, actor Actor, prejoined bool, tokens ...string) error {
	if len(tokens) == 0 {
		return errors.InvalidCommand(nil, "no command specified")
	}

	cmd, err := m.Get(tokens[0])
	if err != nil {
		m.log.Debug("Rejected '%s': %v", tokens[0], err)
		return err
	}

	rest := tokens[1:]
	start := time.Now()

	err = cmd.Handle(ctx, actor, prejoined, rest...)

	event := ExecuteEvent{
		ID:       uuid.New(),
		Command:  cmd,
		Actor:    actor,
		Tokens:   append([]string(nil), rest...),
		Err:      err,
		Duration: time.Since(start),
	}
	cmd.Events().Publish(event)

	if err != nil {
		m.log.Debug("Command '%s' failed after %s: %v", cmd.ID(), event.Duration, err)
	} else {
		m.log.Debug("Command '%s' completed in %s", cmd.ID(), event.Duration)
	}

	m.record(ctx, cmd, actor, rest, err)
	return err
}

func (m *Manager) record(ctx context.Context, cmd Command, actor Actor, tokens []string, err error) {
	if m.history == nil {
		return
	}

	entry := history.NewEntry(cmd.ID(), tokens, ActorName(actor))
	if err != nil {
		entry.Error = err.Error()
	}

	if herr := m.history.Append(ctx, entry); herr != nil {
		m.log.Warn("Unable to record '%s' in %s history: %v", cmd.ID(), m.history.Name(), herr)
	}
}

// Autocomplete completes command names while the first token is being
// typed and delegates to the named command afterwards.
func (m *Manager) Autocomplete(actor Actor, prejoined bool, tokens []string, pos *Position) []string {
	if len(tokens) <= 1 {
		prefix := ""
		if len(tokens) == 1 {
			prefix = tokens[0]
		}
		return m.complete(prefix)
	}

	cmd, ok := m.lookup(tokens[0])
	if !ok {
		return nil
	}

	return cmd.Autocomplete(actor, prejoined, tokens[1:], pos)
}

func (m *Manager) complete(prefix string) []string {
	prefix = strings.ToLower(prefix)

	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0)
	m.commands.Ascend(prefix, func(id string, cmd Command) bool {
		if !strings.HasPrefix(id, prefix) {
			return false
		}
		names = append(names, cmd.Name())
		return true
	})

	return names
}

func validate(cmd Command) error {
	if cmd == nil {
		return errors.InvalidCommand(nil, "command cannot be nil")
	}
	if strings.TrimSpace(cmd.Name()) == "" {
		return errors.InvalidCommand(nil, "command name cannot be empty")
	}
	if strings.ContainsAny(cmd.Name(), " \t\n") {
		return errors.InvalidCommand(nil, "command name '"+cmd.Name()+"' contains whitespace")
	}
	if cmd.Events() == nil {
		return errors.InvalidCommand(nil, "command '"+cmd.Name()+"' has no event channel; embed command.NewBase")
	}

	return nil
}
