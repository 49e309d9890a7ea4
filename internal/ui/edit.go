package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwtools/git-cw/internal/wizard"
)

type editModel struct {
	title string
	area  textarea.Model

	done      bool
	cancelled bool
}

func (m editModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyCtrlD:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m editModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.area.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+d finish / esc cancel"))
	return b.String()
}

// Edit shows a multi-line editor, finished with ctrl+d. Dismissing it
// yields wizard.ErrCancelled.
func (p Prompter) Edit(req wizard.EditRequest) (string, error) {
	ta := textarea.New()
	ta.Placeholder = req.Placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(defaultWidth)
	ta.SetHeight(6)
	ta.CharLimit = 0
	ta.Focus()

	m := editModel{
		title: heading(req.Title, req.Position),
		area:  ta,
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	em, ok := final.(editModel)
	if !ok || em.cancelled || !em.done {
		return "", wizard.ErrCancelled
	}
	return em.area.Value(), nil
}
