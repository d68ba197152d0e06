package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/srvm-cli/srvm/internal/exec"
)

func newSSHCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ssh [environment]",
		Short: "Open an interactive session on an environment",
		Long: `Open an interactive ssh session on an environment.
Without an environment name you are asked to choose one.

Examples:
  srvm ssh
  srvm ssh prod
  srvm ssh prod --dry-run`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: app.completeEnvironments,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			_, env, err := app.resolveEnvironment(cfg, firstArg(args))
			if err != nil {
				return err
			}

			if dryRun {
				inv, err := exec.SessionInvocation(env.Service)
				if err != nil {
					return err
				}
				printInvocation(cmd, inv)
				return nil
			}
			return app.Dispatcher().EnterSession(cmd.Context(), env.Service)
		},
	}

	addDryRunFlag(cmd, &dryRun)
	return cmd
}

func addDryRunFlag(cmd *cobra.Command, dryRun *bool) {
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "print the ssh command instead of running it")
}

func addEnvironmentFlag(app *App, cmd *cobra.Command, name *string) {
	cmd.Flags().StringVarP(name, "environment", "e", "", "environment to use (asks when omitted)")
	_ = cmd.RegisterFlagCompletionFunc("environment", app.completeEnvironmentFlag)
}

func printInvocation(cmd *cobra.Command, inv exec.Invocation) {
	fmt.Fprintln(cmd.OutOrStdout(), inv.String())
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
