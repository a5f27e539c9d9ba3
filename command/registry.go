package command

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds registered commands
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register registers a command, replacing any command of the same name
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[name]
}

// Lookup retrieves a command by name or returns ErrUnknownCommand
func (r *Registry) Lookup(name string) (Command, error) {
	cmd := r.Get(name)
	if cmd == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// List returns all registered command names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the command whose captures include the file name, if any.
// The longest matching command name wins.
func (r *Registry) Match(filename string) Command {
	var best Command
	for _, name := range r.List() {
		if matchesCapture(name, filename) && (best == nil || len(name) > len(best.Name())) {
			best = r.Get(name)
		}
	}
	return best
}

// Global registry
var globalRegistry = NewRegistry()

// Default returns the global registry
func Default() *Registry {
	return globalRegistry
}

// Register registers a command globally
func Register(cmd Command) {
	globalRegistry.Register(cmd)
}

// Get retrieves a command from the global registry
func Get(name string) Command {
	return globalRegistry.Get(name)
}

// Lookup retrieves a command from the global registry or returns
// ErrUnknownCommand
func Lookup(name string) (Command, error) {
	return globalRegistry.Lookup(name)
}

// List returns all globally registered command names
func List() []string {
	return globalRegistry.List()
}

func init() {
	// Register default commands
	Register(NewPs())
	Register(NewLsof())
}
