package doctor

import (
	"fmt"
	"os/exec"

	srvmexec "github.com/srvm-cli/srvm/internal/exec"
)

// SSHClientCheck verifies the OpenSSH client is on PATH.
type SSHClientCheck struct {
	// LookPath finds a binary; exec.LookPath when nil.
	LookPath func(file string) (string, error)
}

func (c *SSHClientCheck) Name() string     { return "ssh_client" }
func (c *SSHClientCheck) Category() string { return CategorySSH }

func (c *SSHClientCheck) Run() CheckResult {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath(srvmexec.SSHClient)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s client not found on PATH", srvmexec.SSHClient),
			Suggestion: "Install the OpenSSH client (e.g. apt install openssh-client)",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s client: %s", srvmexec.SSHClient, path),
	}
}
