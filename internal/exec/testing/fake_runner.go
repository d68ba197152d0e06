// Package testing provides test doubles for the exec package.
package testing

import (
	"context"
	"sync"

	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/exec"
)

// FakeRunner records invocations instead of spawning processes.
type FakeRunner struct {
	mu    sync.Mutex
	Calls []exec.Invocation

	// Err is returned from every Run call when set.
	Err error
}

// NewFakeRunner creates a runner that succeeds for every invocation.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// ExitWith makes every subsequent Run report the given child exit status.
func (f *FakeRunner) ExitWith(code int) *FakeRunner {
	f.Err = nil
	if code != 0 {
		f.Err = errors.NewExitError(code)
	}
	return f
}

// Run implements exec.Runner.
func (f *FakeRunner) Run(_ context.Context, inv exec.Invocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, inv)
	return f.Err
}

// Last returns the most recent invocation, or false if none was made.
func (f *FakeRunner) Last() (exec.Invocation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return exec.Invocation{}, false
	}
	return f.Calls[len(f.Calls)-1], true
}
