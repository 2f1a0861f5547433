// Package prompt provides a yes/no confirmation capability with an
// interactive terminal implementation and a fixed-answer implementation
// for non-interactive runs.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the operator abandons a prompt
// (Esc or Ctrl-C) instead of answering it.
var ErrCancelled = errors.New("prompt cancelled")

// Confirmer asks the operator a yes/no question. def is the answer
// taken when the operator accepts the default (empty input).
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// Static is a Confirmer that never prompts: it always returns Answer.
// Used for --yes mode and in tests.
type Static struct {
	Answer bool
}

func (s Static) Confirm(string, bool) (bool, error) {
	return s.Answer, nil
}

// ParseAnswer normalizes a typed answer. Empty input selects def.
// ok is false when the input is not recognizable as yes or no.
func ParseAnswer(s string, def bool) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// hint renders the [Y/n] / [y/N] suffix for a question.
func hint(def bool) string {
	if def {
		return "[Y/n]"
	}
	return "[y/N]"
}

var hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

// Terminal is a Confirmer backed by an interactive bubbletea prompt.
type Terminal struct{}

func (Terminal) Confirm(question string, def bool) (bool, error) {
	m := newConfirmModel(question, def)
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final, ok := result.(confirmModel)
	if !ok || !final.done {
		return false, ErrCancelled
	}
	return final.answer, nil
}

// confirmModel is a bubbletea model that asks one yes/no question.
type confirmModel struct {
	question string
	def      bool
	input    textinput.Model
	answer   bool
	done     bool
}

func newConfirmModel(question string, def bool) confirmModel {
	ti := textinput.New()
	ti.CharLimit = 3
	ti.Focus()
	return confirmModel{
		question: question,
		def:      def,
		input:    ti,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			answer, ok := ParseAnswer(m.input.Value(), m.def)
			if !ok {
				// Not a yes or a no: clear and ask again.
				m.input.SetValue("")
				return m, nil
			}
			m.answer = answer
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
	return fmt.Sprintf("%s %s %s\n", m.question, hintStyle.Render(hint(m.def)), m.input.View())
}
