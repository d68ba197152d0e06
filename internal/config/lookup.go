package config

import (
	"fmt"

	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/util"
)

// GetEnvironment returns the environment with the given name.
// Returns an ErrUsage error naming the environment if it doesn't exist.
func GetEnvironment(cfg *Config, name string) (*Environment, error) {
	if cfg != nil {
		if env, ok := cfg.Environments[name]; ok {
			return env, nil
		}
	}
	return nil, errors.New(errors.ErrUsage,
		"invalid environment "+name,
		suggestName(name, cfg.EnvironmentNames(), "environments"))
}

// GetTask returns the task with the given name from an environment.
// Returns an ErrUsage error naming the task if it doesn't exist.
func GetTask(env *Environment, name string) (Task, error) {
	if env != nil {
		if task, ok := env.Tasks[name]; ok {
			return task, nil
		}
	}
	return nil, errors.New(errors.ErrUsage,
		"invalid task "+name,
		suggestName(name, env.TaskNames(), "tasks"))
}

// suggestName builds the hint shown under an unknown-name error.
func suggestName(name string, available []string, what string) string {
	if similar := util.SuggestSimilar(name, available, 2); len(similar) > 0 {
		return fmt.Sprintf("Did you mean: %s?", util.JoinOrNone(similar))
	}
	return fmt.Sprintf("Available %s: %s", what, util.JoinOrNone(available))
}
