package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/srvm-cli/srvm/internal/doctor"
	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/ui"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func newDoctorCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and ssh setup",
		Long: `Check that ssh is installed, the configuration file loads, the default
environment exists and every key_file holds a usable private key.
Exits with status 1 when any check fails.

Examples:
  srvm doctor
  srvm doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doctorCommand(cmd.OutOrStdout(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func (a *App) doctorCommand(out io.Writer, asJSON bool) error {
	path := a.ConfigPath()
	cfg, loadErr := a.LoadConfig()

	checks := doctor.Collect(path, cfg, loadErr, a.LookPath)
	results := doctor.RunAll(checks)

	var err error
	if asJSON {
		err = outputDoctorJSON(out, checks, results)
	} else {
		outputDoctorText(out, checks, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		// The report already explains the failures.
		return errors.NewExitError(errors.ExitFailure)
	}
	return nil
}

// groupResults groups results by category, in display order.
func groupResults(checks []doctor.Check, results []doctor.CheckResult) []CategoryOutput {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}

	categories := make([]CategoryOutput, 0, len(grouped))
	for _, name := range doctor.Categories {
		if len(grouped[name]) == 0 {
			continue
		}
		categories = append(categories, CategoryOutput{Name: name, Results: grouped[name]})
	}
	return categories
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(out io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	output := DoctorOutput{
		Categories: groupResults(checks, results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			AllClear: !doctor.HasIssues(results),
		},
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(out io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out, headerStyle.Render("srvm diagnostic report"))
	fmt.Fprintln(out)

	for _, category := range groupResults(checks, results) {
		fmt.Fprintln(out, headerStyle.Render(category.Name))
		for _, result := range category.Results {
			renderCheckResult(out, result)
		}
		fmt.Fprintln(out)
	}

	if doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	}
}

// renderCheckResult renders a single check result.
func renderCheckResult(out io.Writer, result doctor.CheckResult) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolSuccess
		style = ui.SuccessStyle()
	case doctor.StatusWarn:
		symbol = ui.SymbolWarning
		style = ui.WarningStyle()
	default:
		symbol = ui.SymbolFail
		style = ui.ErrorStyle()
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}
