// Package tui provides terminal user interface components for sb.
//
// # Confirmation Prompt
//
// The clean command asks before removing persistent data:
//
//	p := tui.NewPrompter(os.Stdin, os.Stdout)
//	ok, err := p.Confirm(warning, "Are you sure you want to continue? (y/N):")
//
// On a terminal the question is a Bubble Tea prompt (enter answers, esc
// cancels). Otherwise one line is read from the input. Either way only an
// answer starting with y or Y confirms.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - text input and key bindings
//   - github.com/charmbracelet/lipgloss - Styling
//
// and golang.org/x/term to detect a terminal.
package tui
