package exec

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/srvm-cli/srvm/internal/errors"
)

// Runner starts an external process and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ProcessRunner runs invocations as child processes attached to the given
// streams. The child owns those streams until it exits.
type ProcessRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewTerminalRunner creates a runner that hands the current terminal to the child.
func NewTerminalRunner() *ProcessRunner {
	return &ProcessRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run spawns the invocation and waits for it.
//
// A child that exits non-zero yields an *errors.ExitError with its status.
// Failing to start the binary or to wait for it yields an ErrExec error.
func (r *ProcessRunner) Run(ctx context.Context, inv Invocation) error {
	command := exec.CommandContext(ctx, inv.Name, inv.Args...)
	command.Stdin = r.Stdin
	command.Stdout = r.Stdout
	command.Stderr = r.Stderr

	if err := command.Start(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't start "+inv.Name,
			"Make sure "+inv.Name+" is installed and on your PATH.")
	}

	if err := command.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() >= 0 {
			return errors.NewExitError(exitErr.ExitCode())
		}
		return errors.WrapWithCode(err, errors.ErrExec,
			inv.Name+" didn't finish cleanly",
			"")
	}

	return nil
}
