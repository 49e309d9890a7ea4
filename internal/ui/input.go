package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwtools/git-cw/internal/wizard"
)

type inputModel struct {
	title    string
	input    textinput.Model
	validate func(string) error

	err       error
	done      bool
	cancelled bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.err != nil {
				// validation blocks acceptance
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.validate != nil {
		m.err = m.validate(m.input.Value())
	}
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter accept / esc cancel"))
	return b.String()
}

// Input shows a one-line text field. The request's validator runs after
// every keystroke; while it fails, the message is shown and enter is
// ignored. Dismissing the field yields wizard.ErrCancelled.
func (p Prompter) Input(req wizard.InputRequest) (string, error) {
	ti := textinput.New()
	ti.Placeholder = req.Placeholder
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	m := inputModel{
		title:    heading(req.Title, req.Position),
		input:    ti,
		validate: req.Validate,
	}
	if m.validate != nil {
		m.err = m.validate("")
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	im, ok := final.(inputModel)
	if !ok || im.cancelled || !im.done {
		return "", wizard.ErrCancelled
	}
	return im.input.Value(), nil
}
