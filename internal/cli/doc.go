// Package cli implements the srvm command-line interface.
//
// # Command Structure
//
//	srvm list                         - Show environments and their tasks
//	srvm ssh [environment]            - Open an interactive session
//	srvm run [task] -e <environment>  - Run a named task
//	srvm cmd -e <environment> -- ...  - Run an ad-hoc command
//	srvm show [environment]           - Describe an environment
//	srvm doctor                       - Diagnose setup problems
//
// Missing environment or task names are asked for interactively; a
// collection with a single entry is chosen without asking.
//
// # Flag Handling
//
// Global flags (--config, --debug, --no-color) live on the root command and
// are resolved through viper, so SRVM_CONFIG, SRVM_DEBUG and NO_COLOR work
// too.
//
// # Exit Codes
//
// Commands return errors; Execute maps them to exit statuses with
// errors.ExitCode. A remote command's own exit status becomes srvm's.
package cli
