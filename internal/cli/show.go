package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/srvm-cli/srvm/internal/config"
	"github.com/srvm-cli/srvm/internal/exec"
	"github.com/srvm-cli/srvm/internal/ui"
	"github.com/srvm-cli/srvm/pkg/sshutil"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [environment]",
		Short: "Describe an environment",
		Long: `Show an environment's connection settings, what ~/.ssh/config adds to
them, the ssh command srvm runs and the environment's tasks.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: app.completeEnvironments,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			name, env, err := app.resolveEnvironment(cfg, firstArg(args))
			if err != nil {
				return err
			}

			return app.printEnvironment(cmd.OutOrStdout(), cfg, name, env)
		},
	}
}

func (a *App) printEnvironment(out io.Writer, cfg *config.Config, name string, env *config.Environment) error {
	header := ui.NameStyle().Render(name)
	if cfg.IsDefault(name) {
		header += "  " + ui.MutedStyle().Render("[default]")
	}
	fmt.Fprintln(out, header)

	row := func(key, value string) {
		fmt.Fprintf(out, "  %-12s%s\n", key+":", value)
	}

	row("service", env.Service.Kind())
	if svc, ok := env.Service.(config.SSHService); ok {
		row("host", svc.Host)
		if svc.Port != 0 {
			row("port", svc.PortString())
		}
		if svc.User != "" {
			row("user", svc.User)
		}
		if svc.KeyFile != "" {
			row("key_file", svc.KeyFile)
		}

		entry, err := a.resolveSSHAlias(svc.Host)
		if err != nil {
			a.logger().Warn("couldn't read ssh config: %v", err)
		} else if entry.Configured() {
			row("ssh config", entry.Description())
		}
	}

	if inv, err := exec.SessionInvocation(env.Service); err == nil {
		row("session", inv.String())
	}

	taskNames := env.TaskNames()
	if len(taskNames) == 0 {
		fmt.Fprintf(out, "  tasks: %s\n", ui.MutedStyle().Render("(none)"))
		return nil
	}

	width := 0
	for _, taskName := range taskNames {
		width = max(width, len(taskName))
	}

	fmt.Fprintln(out, "  tasks:")
	for _, taskName := range taskNames {
		fmt.Fprintf(out, "    %s %-*s  %s\n", ui.SymbolBullet, width, taskName, describeTask(env.Tasks[taskName]))
	}
	return nil
}

func (a *App) resolveSSHAlias(host string) (sshutil.HostEntry, error) {
	if a.SSHConfig != "" {
		return sshutil.ResolveHostFile(a.SSHConfig, host)
	}
	return sshutil.ResolveHost(host)
}

func describeTask(task config.Task) string {
	switch t := task.(type) {
	case config.CommandTask:
		return t.Command
	default:
		return task.Kind()
	}
}
