package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/quickfindr/devtool/internal/config"
)

// Command interface that all devtool commands must implement
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Env is what every command gets from main
type Env struct {
	Cfg *config.Config
	Log *slog.Logger
}

// Registry manages the available commands
type Registry struct {
	env      *Env
	commands map[string]Command
}

// NewRegistry creates a new command registry sharing env with its commands
func NewRegistry(env *Env) *Registry {
	return &Registry{
		env:      env,
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp() {
	fmt.Fprintln(stdout, "Usage: devtool <command> [flags]")
	fmt.Fprintln(stdout, "\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Fprintf(stdout, "  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
	fmt.Fprintln(stdout, "\nRun 'devtool <command> -h' for the flags of a command.")
}

// newRegistry registers every command
func newRegistry(env *Env) *Registry {
	r := NewRegistry(env)
	r.Register(&AuditBracesCommand{env: env})
	r.Register(&BalanceBracesCommand{env: env})
	r.Register(&ReplaceSectionCommand{env: env})
	r.Register(&RebuildAnchoredCommand{env: env})
	r.Register(&RebuildSectionCommand{env: env})
	r.Register(&CleanRecentCommand{env: env})
	r.Register(&DoctorCommand{env: env})
	return r
}
