package cli

import (
	"github.com/srvm-cli/srvm/internal/config"
	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/ui"
)

// Prompt headers.
const (
	environmentHeader = "Choose environment:"
	taskHeader        = "Choose task:"
)

// resolveEnvironment returns the environment called name, or asks for one
// when name is empty. The default environment starts highlighted.
func (a *App) resolveEnvironment(cfg *config.Config, name string) (string, *config.Environment, error) {
	if name != "" {
		env, err := config.GetEnvironment(cfg, name)
		if err != nil {
			return "", nil, err
		}
		return name, env, nil
	}

	names := cfg.EnvironmentNames()
	if len(names) == 0 {
		return "", nil, errors.New(errors.ErrUsage,
			"no environments defined in "+a.ConfigPath(),
			"Add an environment under the environments key.")
	}

	choices := make([]ui.Choice[string], len(names))
	initial := 0
	for i, n := range names {
		choices[i] = ui.Choice[string]{Label: n, Value: n}
		if cfg.IsDefault(n) {
			initial = i
		}
	}

	chosen, err := ui.Select(a.Prompter, environmentHeader, choices, initial)
	if err != nil {
		return "", nil, err
	}
	return chosen, cfg.Environments[chosen], nil
}

// resolveTask returns the task called name in env, or asks for one when
// name is empty.
func (a *App) resolveTask(envName string, env *config.Environment, name string) (config.Task, error) {
	if name != "" {
		return config.GetTask(env, name)
	}

	names := env.TaskNames()
	if len(names) == 0 {
		return nil, errors.New(errors.ErrUsage,
			"environment "+envName+" has no tasks",
			"Add tasks under environments."+envName+".tasks, or use srvm cmd.")
	}

	choices := make([]ui.Choice[config.Task], len(names))
	for i, n := range names {
		choices[i] = ui.Choice[config.Task]{Label: n, Value: env.Tasks[n]}
	}

	return ui.Select(a.Prompter, taskHeader, choices, 0)
}
