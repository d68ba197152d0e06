package exec

import (
	"context"

	"github.com/srvm-cli/srvm/internal/config"
	"github.com/srvm-cli/srvm/internal/logger"
)

// Dispatcher turns services and tasks into external client invocations and
// runs them one at a time.
type Dispatcher struct {
	runner Runner
	log    logger.Logger
}

// NewDispatcher creates a dispatcher on top of runner.
func NewDispatcher(runner Runner, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Noop()
	}
	return &Dispatcher{runner: runner, log: log}
}

// EnterSession opens an interactive session on svc.
func (d *Dispatcher) EnterSession(ctx context.Context, svc config.Service) error {
	inv, err := SessionInvocation(svc)
	if err != nil {
		return err
	}
	return d.run(ctx, inv)
}

// RunCommand runs a literal command line on svc.
func (d *Dispatcher) RunCommand(ctx context.Context, svc config.Service, commandLine string) error {
	inv, err := CommandInvocation(svc, commandLine)
	if err != nil {
		return err
	}
	return d.run(ctx, inv)
}

// RunTask runs task on svc.
func (d *Dispatcher) RunTask(ctx context.Context, svc config.Service, task config.Task) error {
	inv, err := TaskInvocation(svc, task)
	if err != nil {
		return err
	}
	return d.run(ctx, inv)
}

func (d *Dispatcher) run(ctx context.Context, inv Invocation) error {
	d.log.Debug("running %s", inv)
	return d.runner.Run(ctx, inv)
}
