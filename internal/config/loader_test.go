package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
default_environment: prod
environments:
  prod:
    service:
      ssh: 10.0.0.1
    tasks:
      deploy: make deploy
      restart:
        type: command
        command: systemctl restart app
  staging:
    service:
      ssh:
        host: staging.example.com
        port: 2222
        key_file: "  ~/.ssh/staging  "
        user: deploy
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.DefaultEnvironment)
	assert.Equal(t, []string{"prod", "staging"}, cfg.EnvironmentNames())

	prod := cfg.Environments["prod"]
	require.NotNil(t, prod)
	assert.Equal(t, SSHService{Host: "10.0.0.1"}, prod.Service)
	assert.Equal(t, CommandTask{Command: "make deploy"}, prod.Tasks["deploy"])
	assert.Equal(t, CommandTask{Command: "systemctl restart app"}, prod.Tasks["restart"])
	assert.Equal(t, []string{"deploy", "restart"}, prod.TaskNames())

	staging := cfg.Environments["staging"]
	require.NotNil(t, staging)
	assert.Equal(t, SSHService{
		Host:    "staging.example.com",
		Port:    2222,
		KeyFile: "~/.ssh/staging",
		User:    "deploy",
	}, staging.Service)
	assert.Empty(t, staging.Tasks)
	assert.NotNil(t, staging.Tasks)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	assert.True(t, errors.IsCode(err, errors.ErrConfigIO))
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "Could not read config file")
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, "environments:\n  prod: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)

	assert.True(t, errors.IsCode(err, errors.ErrConfigSyntax))
	assert.Equal(t, errors.ExitConfig, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "line")
	assert.Contains(t, err.Error(), "Fix "+path)
}

func TestLoadValidationErrorCarriesPath(t *testing.T) {
	path := writeConfig(t, "environments: [a, b]\n")

	_, err := Load(path)
	require.Error(t, err)

	assert.True(t, errors.IsCode(err, errors.ErrConfigInvalid))
	assert.Equal(t, errors.ExitConfig, errors.ExitCode(err))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "environments", verr.Path)
	assert.Equal(t, "environments must be a mapping", verr.Reason)
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeConfig(t, `
default_environment: prod
environments:
  prod:
    service: {ssh: {host: a.example.com, port: 22}}
    tasks: {uptime: uptime, df: {type: command, command: df -h}}
  dev:
    service: {ssh: dev.local}
`)

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "environments absent yields empty mapping",
			input: "default_environment: prod\n",
			check: func(t *testing.T, cfg *Config) {
				assert.NotNil(t, cfg.Environments)
				assert.Empty(t, cfg.Environments)
				assert.Equal(t, "prod", cfg.DefaultEnvironment)
			},
		},
		{
			name:  "empty mapping document",
			input: "{}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Environments)
				assert.Equal(t, "", cfg.DefaultEnvironment)
			},
		},
		{
			name:  "default environment is not cross-checked",
			input: "default_environment: nowhere\nenvironments:\n  prod:\n    service: {ssh: h}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "nowhere", cfg.DefaultEnvironment)
				assert.True(t, cfg.IsDefault("nowhere"))
				assert.False(t, cfg.IsDefault("prod"))
			},
		},
		{
			name:  "legacy default key",
			input: "default_evironment: prod\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "prod", cfg.DefaultEnvironment)
			},
		},
		{
			name:  "bare string task is a command task",
			input: "environments:\n  e1:\n    service: {ssh: h}\n    tasks:\n      t1: echo hi\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, CommandTask{Command: "echo hi"}, cfg.Environments["e1"].Tasks["t1"])
			},
		},
		{
			name:  "bare string service has no optional fields",
			input: "environments:\n  e1:\n    service:\n      ssh: db.internal\n",
			check: func(t *testing.T, cfg *Config) {
				svc, ok := cfg.Environments["e1"].Service.(SSHService)
				require.True(t, ok)
				assert.Equal(t, "db.internal", svc.Host)
				assert.Zero(t, svc.Port)
				assert.Empty(t, svc.KeyFile)
				assert.Empty(t, svc.User)
			},
		},
		{
			name:  "later duplicate keys win",
			input: "environments:\n  e1:\n    service: {ssh: first}\n  e1:\n    service: {ssh: second}\n",
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Environments, 1)
				assert.Equal(t, SSHService{Host: "second"}, cfg.Environments["e1"].Service)
			},
		},
		{
			name: "aliases are followed",
			input: `
hosts:
  web: &web {host: web.example.com, user: app}
environments:
  blue:
    service: {ssh: *web}
  green:
    service: {ssh: *web}
`,
			check: func(t *testing.T, cfg *Config) {
				want := SSHService{Host: "web.example.com", User: "app"}
				assert.Equal(t, want, cfg.Environments["blue"].Service)
				assert.Equal(t, want, cfg.Environments["green"].Service)
			},
		},
		{
			name:  "key file whitespace only is absent",
			input: "environments:\n  e1:\n    service: {ssh: {host: h, key_file: '   '}}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, SSHService{Host: "h"}, cfg.Environments["e1"].Service)
			},
		},
		{
			name:  "null default environment is unset",
			input: "default_environment: ~\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "", cfg.DefaultEnvironment)
			},
		},
		{
			name:  "empty default environment value is unset",
			input: "default_environment:\nenvironments:\n  prod:\n    service: {ssh: h}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "", cfg.DefaultEnvironment)
				assert.False(t, cfg.IsDefault("prod"))
			},
		},
		{
			name:  "null optional ssh fields are absent",
			input: "environments:\n  e1:\n    service: {ssh: {host: h, port: ~, user: null, key_file: ~}}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, SSHService{Host: "h"}, cfg.Environments["e1"].Service)
			},
		},
		{
			name:  "hex port",
			input: "environments:\n  e1:\n    service: {ssh: {host: h, port: 0x16}}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, uint16(22), cfg.Environments["e1"].Service.(SSHService).Port)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.check(t, cfg)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPath   string
		wantReason string
	}{
		{
			name:       "empty document",
			input:      "",
			wantReason: "configuration file must be a mapping",
		},
		{
			name:       "root is a sequence",
			input:      "- a\n- b\n",
			wantReason: "configuration file must be a mapping",
		},
		{
			name:       "root is a scalar",
			input:      "hello\n",
			wantReason: "configuration file must be a mapping",
		},
		{
			name:       "environments is a string",
			input:      "environments: prod\n",
			wantPath:   "environments",
			wantReason: "environments must be a mapping",
		},
		{
			name:       "environment name is not a string",
			input:      "environments:\n  42:\n    service: {ssh: h}\n",
			wantPath:   "environments",
			wantReason: "environment names must be strings",
		},
		{
			name:       "environment is not a mapping",
			input:      "environments:\n  prod: 10.0.0.1\n",
			wantPath:   "environments.prod",
			wantReason: "an environment definition must be a mapping",
		},
		{
			name:       "service missing",
			input:      "environments:\n  prod:\n    tasks: {a: b}\n",
			wantPath:   "environments.prod.service",
			wantReason: "a service definition must be a mapping",
		},
		{
			name:       "service is a string",
			input:      "environments:\n  prod:\n    service: ssh\n",
			wantPath:   "environments.prod.service",
			wantReason: "a service definition must be a mapping",
		},
		{
			name:       "unknown service kind",
			input:      "environments:\n  prod:\n    service: {telnet: h}\n",
			wantPath:   "environments.prod.service",
			wantReason: "invalid service type (expected one of: ssh)",
		},
		{
			name:       "ssh is a sequence",
			input:      "environments:\n  prod:\n    service: {ssh: [a, b]}\n",
			wantPath:   "environments.prod.service.ssh",
			wantReason: "SSH configuration must be a string or a mapping",
		},
		{
			name:       "ssh host missing",
			input:      "environments:\n  prod:\n    service: {ssh: {user: root}}\n",
			wantPath:   "environments.prod.service.ssh.host",
			wantReason: "SSH host must be a string",
		},
		{
			name:       "ssh port not an integer",
			input:      "environments:\n  prod:\n    service: {ssh: {host: h, port: twenty}}\n",
			wantPath:   "environments.prod.service.ssh.port",
			wantReason: "SSH port must be an integer between 1 and 65535",
		},
		{
			name:       "ssh port out of range",
			input:      "environments:\n  prod:\n    service: {ssh: {host: h, port: 70000}}\n",
			wantPath:   "environments.prod.service.ssh.port",
			wantReason: "SSH port must be an integer between 1 and 65535",
		},
		{
			name:       "ssh user not a string",
			input:      "environments:\n  prod:\n    service: {ssh: {host: h, user: [a]}}\n",
			wantPath:   "environments.prod.service.ssh.user",
			wantReason: "SSH user must be a string",
		},
		{
			name:       "ssh key file not a string",
			input:      "environments:\n  prod:\n    service: {ssh: {host: h, key_file: {a: b}}}\n",
			wantPath:   "environments.prod.service.ssh.key_file",
			wantReason: "SSH key_file must be a string",
		},
		{
			name:       "tasks not a mapping",
			input:      "environments:\n  prod:\n    service: {ssh: h}\n    tasks: [a]\n",
			wantPath:   "environments.prod.tasks",
			wantReason: "tasks must be a mapping",
		},
		{
			name:       "task name not a string",
			input:      "environments:\n  prod:\n    service: {ssh: h}\n    tasks: {1: uptime}\n",
			wantPath:   "environments.prod.tasks",
			wantReason: "task names must be strings",
		},
		{
			name:       "task is a sequence",
			input:      "environments:\n  prod:\n    service: {ssh: h}\n    tasks: {up: [uptime]}\n",
			wantPath:   "environments.prod.tasks.up",
			wantReason: "a task definition must be a string or a mapping",
		},
		{
			name:       "task without type",
			input:      "environments:\n  prod:\n    service: {ssh: h}\n    tasks: {up: {command: uptime}}\n",
			wantPath:   "environments.prod.tasks.up",
			wantReason: "a task definition must have a type property",
		},
		{
			name:       "unknown task type",
			input:      "environments:\n  prod:\n    service: {ssh: h}\n    tasks: {up: {type: script, command: uptime}}\n",
			wantPath:   "environments.prod.tasks.up.type",
			wantReason: `invalid type "script"`,
		},
		{
			name:       "command task without command",
			input:      "environments:\n  prod:\n    service: {ssh: h}\n    tasks: {up: {type: command}}\n",
			wantPath:   "environments.prod.tasks.up.command",
			wantReason: "the command property must be a string",
		},
		{
			name:       "default environment not a string",
			input:      "default_environment: [prod]\n",
			wantPath:   "default_environment",
			wantReason: "default_environment must be a string",
		},
		{
			name:       "dotted names are quoted in the path",
			input:      "environments:\n  eu.prod: 1\n",
			wantPath:   `environments."eu.prod"`,
			wantReason: "an environment definition must be a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.IsCode(err, errors.ErrConfigInvalid))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantPath, verr.Path)
			assert.Equal(t, tt.wantReason, verr.Reason)
			assert.Contains(t, err.Error(), tt.wantReason)
		})
	}
}

func TestParse_FailsOnFirstViolation(t *testing.T) {
	// The valid environment must not leak out alongside the error.
	cfg, err := Parse([]byte(`
environments:
  a:
    service: {ssh: ok}
  b:
    service: {ssh: {port: 22}}
`))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParse_MissingHostDiffersFromShapeError(t *testing.T) {
	_, missingHost := Parse([]byte("environments:\n  e:\n    service: {ssh: {port: 22}}\n"))
	_, badShape := Parse([]byte("environments:\n  e:\n    service: {ssh: 22}\n"))

	require.Error(t, missingHost)
	require.Error(t, badShape)
	assert.NotEqual(t, missingHost.Error(), badShape.Error())
	assert.Contains(t, missingHost.Error(), "SSH host must be a string")
	assert.Contains(t, badShape.Error(), "SSH configuration must be a string or a mapping")
}

func TestSSHService_Target(t *testing.T) {
	assert.Equal(t, "10.0.0.1", SSHService{Host: "10.0.0.1"}.Target())
	assert.Equal(t, "root@10.0.0.1", SSHService{Host: "10.0.0.1", User: "root"}.Target())
	assert.Equal(t, "", SSHService{Host: "h"}.PortString())
	assert.Equal(t, "2222", SSHService{Host: "h", Port: 2222}.PortString())
}
