package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/exec"
)

func newCmdCmd(app *App) *cobra.Command {
	var (
		envName string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "cmd [flags] -- <command> [args...]",
		Short: "Run an ad-hoc command on an environment",
		Long: `Run a command that isn't defined as a task.
Everything after -- is joined with spaces and run remotely as one command line.

Examples:
  srvm cmd -e prod -- uptime
  srvm cmd -e staging -- tail -n 100 /var/log/app.log`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			_, env, err := app.resolveEnvironment(cfg, envName)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return errors.New(errors.ErrUsage,
					"no command specified",
					"Put the command after --, e.g. srvm cmd -e prod -- uptime")
			}
			commandLine := strings.Join(args, " ")

			if dryRun {
				inv, err := exec.CommandInvocation(env.Service, commandLine)
				if err != nil {
					return err
				}
				printInvocation(cmd, inv)
				return nil
			}
			return app.Dispatcher().RunCommand(cmd.Context(), env.Service, commandLine)
		},
	}

	// Flags after the first command word belong to the remote command.
	cmd.Flags().SetInterspersed(false)
	addEnvironmentFlag(app, cmd, &envName)
	addDryRunFlag(cmd, &dryRun)
	return cmd
}
