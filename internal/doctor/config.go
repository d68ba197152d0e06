package doctor

import (
	"fmt"
	"strings"

	"github.com/srvm-cli/srvm/internal/config"
	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/util"
)

// ConfigLoadCheck reports whether the configuration file loaded.
type ConfigLoadCheck struct {
	Path   string
	Config *config.Config
	Err    error
}

func (c *ConfigLoadCheck) Name() string     { return "config_load" }
func (c *ConfigLoadCheck) Category() string { return CategoryConfig }

func (c *ConfigLoadCheck) Run() CheckResult {
	if c.Err != nil {
		message := fmt.Sprintf("Couldn't load %s", c.Path)
		var srvmErr *errors.Error
		if errors.As(c.Err, &srvmErr) && srvmErr.Cause != nil {
			message = fmt.Sprintf("%s: %s", message, srvmErr.Cause)
		}
		suggestion := "Fix the file and run srvm doctor again"
		if errors.IsCode(c.Err, errors.ErrConfigIO) {
			suggestion = "Create " + c.Path + " or point --config at an existing file"
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    strings.TrimSpace(message),
			Suggestion: suggestion,
		}
	}

	count := len(c.Config.EnvironmentNames())
	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Config file %s: %d %s", c.Path, count,
			util.Pluralize(count, "environment", "environments")),
	}
}

// DefaultEnvironmentCheck verifies default_environment names a defined environment.
type DefaultEnvironmentCheck struct {
	Config *config.Config
}

func (c *DefaultEnvironmentCheck) Name() string     { return "default_environment" }
func (c *DefaultEnvironmentCheck) Category() string { return CategoryConfig }

func (c *DefaultEnvironmentCheck) Run() CheckResult {
	name := c.Config.DefaultEnvironment
	if name == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No default environment set",
		}
	}

	if _, err := config.GetEnvironment(c.Config, name); err != nil {
		var srvmErr *errors.Error
		suggestion := ""
		if errors.As(err, &srvmErr) {
			suggestion = srvmErr.Suggestion
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Default environment %q isn't defined", name),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Default environment: %s", name),
	}
}
