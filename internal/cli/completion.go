package cli

import (
	"github.com/spf13/cobra"
	"github.com/srvm-cli/srvm/internal/errors"
)

func newCompletionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion scripts for srvm.
Environment and task names complete from the configuration file.

Examples:
  # Bash
  srvm completion bash > /etc/bash_completion.d/srvm

  # Zsh
  srvm completion zsh > "${fpath[1]}/_srvm"

  # Fish
  srvm completion fish > ~/.config/fish/completions/srvm.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return errors.New(errors.ErrUsage,
					"Unknown shell: "+args[0],
					"Supported shells: bash, zsh, fish, powershell")
			}
		},
	}
}

// completeEnvironments completes the first positional argument with
// environment names.
func (a *App) completeEnvironments(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return a.environmentNames(), cobra.ShellCompDirectiveNoFileComp
}

// completeEnvironmentFlag completes the value of -e/--environment.
func (a *App) completeEnvironmentFlag(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return a.environmentNames(), cobra.ShellCompDirectiveNoFileComp
}

// completeTasks completes the first positional argument with the task names
// of the environment given by -e, or of the default environment.
func (a *App) completeTasks(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := a.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	envName, _ := cmd.Flags().GetString("environment")
	if envName == "" {
		envName = cfg.DefaultEnvironment
	}
	env, ok := cfg.Environments[envName]
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return env.TaskNames(), cobra.ShellCompDirectiveNoFileComp
}

func (a *App) environmentNames() []string {
	cfg, err := a.LoadConfig()
	if err != nil {
		return nil
	}
	return cfg.EnvironmentNames()
}
