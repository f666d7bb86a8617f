// Package tui provides terminal user interface components for sb
package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Confirmed reports whether answer is a yes: after trimming and lowercasing
// it starts with 'y'. Everything else, including an empty answer, is a no.
func Confirmed(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(warning, question string) (bool, error)
}

// Styles
var (
	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type confirmKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var confirmKeys = confirmKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// confirmModel is the bubbletea model for a y/N question
type confirmModel struct {
	warning  string
	question string
	input    textinput.Model

	answer    string
	done      bool
	cancelled bool
}

func newConfirmModel(warning, question string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "y/N"
	ti.CharLimit = 16
	ti.Width = 8
	ti.Prompt = ""
	ti.Focus()

	return confirmModel{
		warning:  warning,
		question: question,
		input:    ti,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, confirmKeys.Submit):
			m.answer = m.input.Value()
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, confirmKeys.Cancel):
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	if m.warning != "" {
		b.WriteString(warningStyle.Render(m.warning) + "\n")
	}
	b.WriteString(questionStyle.Render(m.question) + " " + m.input.View() + "\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("[%s] %s  [%s] %s",
		confirmKeys.Submit.Help().Key, confirmKeys.Submit.Help().Desc,
		confirmKeys.Cancel.Help().Key, confirmKeys.Cancel.Help().Desc)))
	return b.String()
}

// Confirmed reports whether the user answered yes.
func (m confirmModel) Confirmed() bool {
	return !m.cancelled && Confirmed(m.answer)
}

// TerminalPrompter asks with an interactive prompt.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm runs the prompt until the user answers or cancels.
func (p *TerminalPrompter) Confirm(warning, question string) (bool, error) {
	prog := tea.NewProgram(newConfirmModel(warning, question), tea.WithInput(p.In), tea.WithOutput(p.Out))

	final, err := prog.Run()
	if err != nil {
		return false, err
	}

	m := final.(confirmModel)
	// echo the exchange so it stays in the scrollback once the prompt clears
	if m.warning != "" {
		fmt.Fprintln(p.Out, m.warning)
	}
	fmt.Fprintf(p.Out, "%s %s\n", m.question, m.answer)
	return m.Confirmed(), nil
}

// LinePrompter asks by printing the question and reading one line.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm prints warning and question and reads the answer. End of input
// counts as no.
func (p *LinePrompter) Confirm(warning, question string) (bool, error) {
	if warning != "" {
		fmt.Fprintln(p.Out, warning)
	}
	fmt.Fprintf(p.Out, "%s ", question)

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return Confirmed(line), nil
}

// NewPrompter returns a TerminalPrompter when in is a terminal and a
// LinePrompter otherwise.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return &TerminalPrompter{In: in, Out: out}
	}
	return &LinePrompter{In: in, Out: out}
}
