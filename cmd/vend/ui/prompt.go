package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks a yes/no question on stderr, reading keys from in (stdin
// when nil); anything but y means no. bypassHint tells a non-interactive
// caller how to avoid the question.
func Confirm(in io.Reader, question string, bypassHint string) (bool, error) {
	if err := RequireInteraction(bypassHint); err != nil {
		return false, fmt.Errorf("confirmation required: %w", err)
	}

	m := &confirmModel{question: question}
	if err := runProgram(in, m, "confirm prompt"); err != nil {
		return false, err
	}
	switch m.state {
	case answerYes:
		return true, nil
	case answerCancelled:
		return false, ErrCancelled
	default:
		return false, nil
	}
}

// Prompt asks for one line of text on stderr, reading keys from in (stdin
// when nil). Tab completes from suggestions, matched by prefix.
func Prompt(in io.Reader, label string, suggestions []string, bypassHint string) (string, error) {
	if err := RequireInteraction(bypassHint); err != nil {
		return "", fmt.Errorf("input required: %w", err)
	}

	field := textinput.New()
	field.Prompt = accentStyle.Render("› ")
	field.Focus()
	if len(suggestions) > 0 {
		field.Placeholder = suggestions[0]
		field.ShowSuggestions = true
		field.SetSuggestions(suggestions)
	}

	m := &promptModel{label: label, input: field}
	if err := runProgram(in, m, "text prompt"); err != nil {
		return "", err
	}
	if m.state == answerCancelled {
		return "", ErrCancelled
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// runProgram drives m on stderr. A nil in leaves bubbletea on stdin.
func runProgram(in io.Reader, m tea.Model, what string) error {
	opts := []tea.ProgramOption{tea.WithOutput(os.Stderr)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

type answer uint8

const (
	answerPending answer = iota
	answerYes
	answerNo
	answerCancelled
)

// keyAnswer maps the keys shared by both prompts.
func keyAnswer(msg tea.Msg) (answer, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return answerPending, false
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return answerCancelled, true
	case tea.KeyEnter:
		return answerNo, true
	}
	return answerPending, false
}

type confirmModel struct {
	question string
	state    answer
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a, ok := keyAnswer(msg); ok {
		m.state = a
		return m, tea.Quit
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(key.String()) {
		case "y":
			m.state = answerYes
			return m, tea.Quit
		case "n":
			m.state = answerNo
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *confirmModel) View() string {
	if m.state != answerPending {
		return ""
	}
	return accentStyle.Render("?") + " " + m.question + " " + mutedStyle.Render("[y/N]") + " "
}

type promptModel struct {
	label string
	input textinput.Model
	state answer
}

func (m *promptModel) Init() tea.Cmd { return textinput.Blink }

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a, ok := keyAnswer(msg); ok {
		// Enter submits the typed text rather than declining.
		if a == answerNo {
			a = answerYes
		}
		m.state = a
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	if m.state != answerPending {
		return ""
	}
	return accentStyle.Render("?") + " " + m.label + "\n" + m.input.View() + "\n" +
		mutedStyle.Render("tab complete  enter buy  esc back") + "\n"
}
