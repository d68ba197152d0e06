// Package ui holds the terminal-facing pieces of srvm: the interactive
// selector used to pick environments and tasks, and the lipgloss styles
// shared by command output.
//
// Select never touches the terminal for a single choice. Prompting goes
// through the Prompter interface; HuhPrompter is the production
// implementation and refuses to run when stdin is not a terminal.
package ui
