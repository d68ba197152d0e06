package config

import (
	"sort"
	"strconv"
)

// DefaultConfigFile is the configuration file read when --config is not given.
const DefaultConfigFile = "srvm.yaml"

// Service kinds.
const (
	ServiceSSH = "ssh"
)

// Task kinds.
const (
	TaskCommand = "command"
)

// Config represents a complete srvm.yaml file. It is built once per process
// and never mutated afterwards.
type Config struct {
	// DefaultEnvironment is the value of default_environment, or "" when absent.
	// It is not checked against Environments.
	DefaultEnvironment string

	// Environments by name.
	Environments map[string]*Environment
}

// Environment is a remote target: one service and the tasks that can run on it.
type Environment struct {
	Service Service
	Tasks   map[string]Task
}

// Service describes how to reach an environment. The set of implementations
// is closed; SSHService is currently the only one.
type Service interface {
	Kind() string
	isService()
}

// SSHService reaches a host through the ssh client.
type SSHService struct {
	Host    string
	Port    uint16 // 0 when not set
	KeyFile string // "" when not set
	User    string // "" when not set
}

func (SSHService) Kind() string { return ServiceSSH }
func (SSHService) isService()   {}

// Target returns the connection target in [user@]host form.
func (s SSHService) Target() string {
	if s.User != "" {
		return s.User + "@" + s.Host
	}
	return s.Host
}

// PortString returns the port as a string, or "" when not set.
func (s SSHService) PortString() string {
	if s.Port == 0 {
		return ""
	}
	return strconv.Itoa(int(s.Port))
}

// Task is a named unit of work in an environment. The set of implementations
// is closed; CommandTask is currently the only one.
type Task interface {
	Kind() string
	isTask()
}

// CommandTask runs a literal shell command line on the remote side.
type CommandTask struct {
	Command string
}

func (CommandTask) Kind() string { return TaskCommand }
func (CommandTask) isTask()      {}

// EnvironmentNames returns all environment names, sorted.
func (c *Config) EnvironmentNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TaskNames returns all task names of the environment, sorted.
func (e *Environment) TaskNames() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.Tasks))
	for name := range e.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDefault reports whether name is the configured default environment.
func (c *Config) IsDefault(name string) bool {
	return c != nil && c.DefaultEnvironment != "" && c.DefaultEnvironment == name
}
