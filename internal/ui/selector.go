package ui

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/srvm-cli/srvm/internal/errors"
	"golang.org/x/term"
)

// Choice is one entry offered by Select. Value is usually a pointer or
// interface borrowed from the loaded configuration.
type Choice[T any] struct {
	Label string
	Value T
}

// Prompter asks the user to pick one of labels and returns its index.
// initial is the index highlighted when the prompt opens.
type Prompter interface {
	Prompt(header string, labels []string, initial int) (int, error)
}

// Select returns the value of the chosen entry. A single choice is returned
// without prompting, so no terminal is needed for it.
//
// Cancellation yields an ErrCancelled error; callers end the process with
// status 1 without printing anything.
func Select[T any](p Prompter, header string, choices []Choice[T], initial int) (T, error) {
	var zero T

	switch len(choices) {
	case 0:
		return zero, errors.New(errors.ErrSelect, "Nothing to choose from", "")
	case 1:
		return choices[0].Value, nil
	}

	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}
	if initial < 0 || initial >= len(choices) {
		initial = 0
	}

	idx, err := p.Prompt(header, labels, initial)
	if err != nil {
		return zero, err
	}
	if idx < 0 || idx >= len(choices) {
		return zero, errors.New(errors.ErrSelect, "Selection out of range", "")
	}
	return choices[idx].Value, nil
}

// HuhPrompter prompts with a huh select field.
type HuhPrompter struct {
	input  io.Reader
	output io.Writer
}

// NewTerminalPrompter creates a prompter on the process's stdin and stdout.
func NewTerminalPrompter() *HuhPrompter {
	return NewHuhPrompter(os.Stdin, os.Stdout)
}

// NewHuhPrompter creates a prompter on custom I/O. Prompting only works when
// input is a terminal.
func NewHuhPrompter(input io.Reader, output io.Writer) *HuhPrompter {
	return &HuhPrompter{input: input, output: output}
}

// Prompt implements Prompter.
func (p *HuhPrompter) Prompt(header string, labels []string, initial int) (int, error) {
	if !IsTerminal(p.input) {
		return -1, errors.New(errors.ErrSelect,
			"Can't ask for a choice without a terminal",
			"Pass the environment with -e/--environment and the task name as an argument.")
	}

	options := make([]huh.Option[int], len(labels))
	for i, label := range labels {
		options[i] = huh.NewOption(label, i)
	}

	choice := initial
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(header).
				Options(options...).
				Value(&choice),
		),
	).WithInput(p.input).WithOutput(p.output)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, tea.ErrInterrupted) {
			return -1, errors.WrapWithCode(err, errors.ErrCancelled, "Selection cancelled", "")
		}
		return -1, errors.WrapWithCode(err, errors.ErrSelect,
			"Couldn't get your selection",
			"Try again, or pass the name explicitly.")
	}

	return choice, nil
}

// IsTerminal reports whether r is a file attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
