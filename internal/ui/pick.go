package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwtools/git-cw/internal/wizard"
)

const (
	defaultWidth  = 72
	maxListHeight = 14
)

type pickItem struct {
	label  string
	detail string
}

func (i pickItem) FilterValue() string { return i.label }

type pickDelegate struct{}

func (d pickDelegate) Height() int                             { return 1 }
func (d pickDelegate) Spacing() int                            { return 0 }
func (d pickDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d pickDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(pickItem)
	if !ok {
		return
	}

	line := i.label
	if i.detail != "" {
		line += "  " + detailStyle.Render(i.detail)
	}

	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("> "+line))
		return
	}
	fmt.Fprint(w, itemStyle.Render(line))
}

type pickModel struct {
	list      list.Model
	choice    string
	done      bool
	cancelled bool
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(pickItem); ok {
				m.choice = i.label
				m.done = true
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.list.View()
}

// Pick shows the options and returns the selected label. Dismissing the
// list yields wizard.ErrCancelled.
func (p Prompter) Pick(req wizard.PickRequest) (string, error) {
	items := make([]list.Item, 0, len(req.Options))
	for _, o := range req.Options {
		items = append(items, pickItem{label: o.Label, detail: o.Detail})
	}

	height := len(items) + 4
	if height > maxListHeight {
		height = maxListHeight
	}

	l := list.New(items, pickDelegate{}, defaultWidth, height)
	l.Title = heading(req.Title, req.Position)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	final, err := tea.NewProgram(pickModel{list: l}).Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(pickModel)
	if !ok || m.cancelled || !m.done {
		return "", wizard.ErrCancelled
	}
	return m.choice, nil
}
