package cli

import (
	"github.com/spf13/cobra"
	"github.com/srvm-cli/srvm/internal/exec"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		envName string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run [task]",
		Short: "Run a task on an environment",
		Long: `Run one of an environment's tasks over ssh.
Missing environment or task names are asked for interactively.
The remote command's exit status becomes srvm's exit status.

Examples:
  srvm run deploy -e prod
  srvm run -e staging
  srvm run deploy -e prod --dry-run`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: app.completeTasks,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			resolvedName, env, err := app.resolveEnvironment(cfg, envName)
			if err != nil {
				return err
			}

			task, err := app.resolveTask(resolvedName, env, firstArg(args))
			if err != nil {
				return err
			}

			if dryRun {
				inv, err := exec.TaskInvocation(env.Service, task)
				if err != nil {
					return err
				}
				printInvocation(cmd, inv)
				return nil
			}
			return app.Dispatcher().RunTask(cmd.Context(), env.Service, task)
		},
	}

	addEnvironmentFlag(app, cmd, &envName)
	addDryRunFlag(cmd, &dryRun)
	return cmd
}
