package config

import (
	"testing"

	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		DefaultEnvironment: "prod",
		Environments: map[string]*Environment{
			"prod": {
				Service: SSHService{Host: "10.0.0.1"},
				Tasks: map[string]Task{
					"deploy":  CommandTask{Command: "make deploy"},
					"restart": CommandTask{Command: "systemctl restart app"},
				},
			},
			"staging": {
				Service: SSHService{Host: "10.0.0.2"},
				Tasks:   map[string]Task{},
			},
		},
	}
}

func TestGetEnvironment(t *testing.T) {
	cfg := testConfig()

	env, err := GetEnvironment(cfg, "prod")
	require.NoError(t, err)
	assert.Same(t, cfg.Environments["prod"], env)
}

func TestGetEnvironment_Unknown(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		lookup     string
		suggestion string
	}{
		{
			name:       "close match is suggested",
			cfg:        testConfig(),
			lookup:     "prdo",
			suggestion: "Did you mean: prod?",
		},
		{
			name:       "no close match lists everything",
			cfg:        testConfig(),
			lookup:     "qa",
			suggestion: "Available environments: prod, staging",
		},
		{
			name:       "nil config",
			cfg:        nil,
			lookup:     "prod",
			suggestion: "Available environments: (none)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := GetEnvironment(tt.cfg, tt.lookup)
			require.Error(t, err)
			assert.Nil(t, env)
			assert.True(t, errors.IsCode(err, errors.ErrUsage))
			assert.Contains(t, err.Error(), "invalid environment "+tt.lookup)
			assert.Contains(t, err.Error(), tt.suggestion)
		})
	}
}

func TestGetTask(t *testing.T) {
	env := testConfig().Environments["prod"]

	task, err := GetTask(env, "deploy")
	require.NoError(t, err)
	assert.Equal(t, CommandTask{Command: "make deploy"}, task)

	_, err = GetTask(env, "missing-task")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUsage))
	assert.Contains(t, err.Error(), "invalid task missing-task")
	assert.Contains(t, err.Error(), "Available tasks: deploy, restart")
}
