package doctor

import (
	"github.com/srvm-cli/srvm/internal/config"
)

// Collect gathers the checks for a configuration file. cfg and loadErr are
// the result of loading path; checks that need a configuration are skipped
// when it failed to load. lookPath finds the ssh client; exec.LookPath when nil.
func Collect(path string, cfg *config.Config, loadErr error, lookPath func(string) (string, error)) []Check {
	checks := []Check{
		&SSHClientCheck{LookPath: lookPath},
		&ConfigLoadCheck{Path: path, Config: cfg, Err: loadErr},
	}

	if loadErr != nil || cfg == nil {
		return checks
	}

	checks = append(checks, &DefaultEnvironmentCheck{Config: cfg})

	for _, name := range cfg.EnvironmentNames() {
		svc, ok := cfg.Environments[name].Service.(config.SSHService)
		if !ok || svc.KeyFile == "" {
			continue
		}
		checks = append(checks, &KeyFileCheck{Environment: name, Path: svc.KeyFile})
	}

	return checks
}
