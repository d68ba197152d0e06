package exec

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/srvm-cli/srvm/internal/config"
	"github.com/srvm-cli/srvm/internal/errors"
)

// SSHClient is the external client binary used for ssh services.
const SSHClient = "ssh"

// Invocation is a planned external process: a binary name looked up on PATH
// and its arguments.
type Invocation struct {
	Name string
	Args []string
}

// String renders the invocation as a shell-quoted command line.
func (i Invocation) String() string {
	return shellquote.Join(append([]string{i.Name}, i.Args...)...)
}

// SessionInvocation plans an interactive session on svc.
func SessionInvocation(svc config.Service) (Invocation, error) {
	switch s := svc.(type) {
	case config.SSHService:
		return sshInvocation(s), nil
	default:
		return Invocation{}, unsupportedService(svc)
	}
}

// CommandInvocation plans running a single command line on svc.
func CommandInvocation(svc config.Service, commandLine string) (Invocation, error) {
	inv, err := SessionInvocation(svc)
	if err != nil {
		return Invocation{}, err
	}
	inv.Args = append(inv.Args, commandLine)
	return inv, nil
}

// TaskInvocation plans running task on svc.
func TaskInvocation(svc config.Service, task config.Task) (Invocation, error) {
	switch t := task.(type) {
	case config.CommandTask:
		return CommandInvocation(svc, t.Command)
	default:
		return Invocation{}, errors.New(errors.ErrExec,
			fmt.Sprintf("Task kind %q isn't supported", kindOf(task)),
			"")
	}
}

// sshInvocation builds `ssh [user@]host [-p port] [-i<key_file>]`.
func sshInvocation(s config.SSHService) Invocation {
	args := []string{s.Target()}
	if s.Port != 0 {
		args = append(args, "-p", s.PortString())
	}
	if s.KeyFile != "" {
		args = append(args, "-i"+s.KeyFile)
	}
	return Invocation{Name: SSHClient, Args: args}
}

func unsupportedService(svc config.Service) error {
	return errors.New(errors.ErrExec,
		fmt.Sprintf("Service kind %q isn't supported", kindOf(svc)),
		"")
}

func kindOf(v interface{ Kind() string }) string {
	if v == nil {
		return "<none>"
	}
	return v.Kind()
}
