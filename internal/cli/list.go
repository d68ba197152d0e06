package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/srvm-cli/srvm/internal/config"
	"github.com/srvm-cli/srvm/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List environments and their tasks",
		Long: `List every environment in the configuration file with its tasks.
The default environment is marked with [default].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			printList(cmd, cfg)
			return nil
		},
	}
}

func printList(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	for _, name := range cfg.EnvironmentNames() {
		line := ui.NameStyle().Render(name)
		if cfg.IsDefault(name) {
			line += "  " + ui.MutedStyle().Render("[default]")
		}
		fmt.Fprintln(out, line)

		for _, task := range cfg.Environments[name].TaskNames() {
			fmt.Fprintf(out, "  %s %s\n", ui.SymbolBullet, task)
		}
	}
}
