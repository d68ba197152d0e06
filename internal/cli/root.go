package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/srvm-cli/srvm/internal/config"
	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/exec"
	"github.com/srvm-cli/srvm/internal/logger"
	"github.com/srvm-cli/srvm/internal/ui"
)

// Setting keys resolved through viper.
const (
	settingConfig  = "config"
	settingDebug   = "debug"
	settingNoColor = "no_color"

	// NO_COLOR disables color when set to any non-empty value, so it is
	// kept apart from the boolean flag.
	settingNoColorEnv = "no_color_env"
)

// App holds what commands need from the outside world. Tests replace the
// prompter, runner and output.
type App struct {
	Out      io.Writer
	Prompter ui.Prompter
	Runner   exec.Runner

	// LookPath finds binaries for doctor; exec.LookPath when nil.
	LookPath func(file string) (string, error)

	// SSHConfig is the OpenSSH client config consulted by show;
	// ~/.ssh/config when empty.
	SSHConfig string

	settings *viper.Viper
	log      logger.Logger
}

// NewApp creates an App wired to the real terminal.
func NewApp() *App {
	return &App{
		Out:      os.Stdout,
		Prompter: ui.NewTerminalPrompter(),
		Runner:   exec.NewTerminalRunner(),
	}
}

// ConfigPath returns the configuration file chosen by flag, environment or default.
func (a *App) ConfigPath() string {
	if a.settings == nil {
		return config.DefaultConfigFile
	}
	return a.settings.GetString(settingConfig)
}

// LoadConfig loads the configuration file.
func (a *App) LoadConfig() (*config.Config, error) {
	return config.Load(a.ConfigPath())
}

// Dispatcher returns a dispatcher on the app's runner.
func (a *App) Dispatcher() *exec.Dispatcher {
	return exec.NewDispatcher(a.Runner, a.logger())
}

func (a *App) logger() logger.Logger {
	if a.log == nil {
		return logger.Default()
	}
	return a.log
}

// NewRootCmd builds the srvm command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	settings := viper.New()
	app.settings = settings

	rootCmd := &cobra.Command{
		Use:   "srvm",
		Short: "Run tasks and open shells on your servers",
		Long: `srvm reads environments and tasks from srvm.yaml and runs them over ssh.

Examples:
  srvm list
  srvm ssh prod
  srvm run deploy -e prod
  srvm cmd -e staging -- tail -n 100 /var/log/app.log`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.applySettings()
		},
	}

	bindSettings(settings, rootCmd.PersistentFlags())

	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Out)

	rootCmd.AddCommand(
		newListCmd(app),
		newSSHCmd(app),
		newRunCmd(app),
		newCmdCmd(app),
		newShowCmd(app),
		newDoctorCmd(app),
		newCompletionCmd(app),
		newVersionCmd(),
	)

	return rootCmd
}

// bindSettings registers the global flags and resolves each setting from
// its flag, then its environment variable, then the flag default.
func bindSettings(settings *viper.Viper, flags *pflag.FlagSet) {
	flags.StringP("config", "c", config.DefaultConfigFile, "path to the srvm configuration file")
	flags.Bool("debug", false, "log debug output to stderr")
	flags.Bool("no-color", false, "disable colored output")

	_ = settings.BindPFlag(settingConfig, flags.Lookup("config"))
	_ = settings.BindPFlag(settingDebug, flags.Lookup("debug"))
	_ = settings.BindPFlag(settingNoColor, flags.Lookup("no-color"))

	settings.SetEnvPrefix("SRVM")
	_ = settings.BindEnv(settingConfig)
	_ = settings.BindEnv(settingDebug)
	_ = settings.BindEnv(settingNoColorEnv, "NO_COLOR")
}

func colorDisabled(settings *viper.Viper) bool {
	return settings.GetBool(settingNoColor) || settings.GetString(settingNoColorEnv) != ""
}

func (a *App) applySettings() error {
	if colorDisabled(a.settings) {
		ui.DisableColor()
	}
	if a.settings.GetBool(settingDebug) {
		a.log = logger.New(os.Stderr, "srvm", true)
		logger.SetDefault(a.log)
	}
	a.logger().Debug("using config file %s", a.ConfigPath())
	return nil
}

// Execute runs srvm with the process arguments and returns the exit status.
func Execute() int {
	return ExecuteArgs(NewApp(), os.Args[1:])
}

// ExecuteArgs runs srvm with args and returns the exit status. Errors are
// printed to app.Out unless they are silent (cancelled selection, remote
// exit status).
func ExecuteArgs(app *App, args []string) int {
	rootCmd := NewRootCmd(app)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.IsSilent(err) {
		printError(app.Out, err)
	}
	return errors.ExitCode(err)
}

func printError(w io.Writer, err error) {
	var srvmErr *errors.Error
	if errors.As(err, &srvmErr) {
		fmt.Fprint(w, srvmErr.Error())
		return
	}
	fmt.Fprintf(w, "%s %s\n", ui.SymbolFail, err)
}
