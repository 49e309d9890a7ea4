// Package ui renders wizard prompts with bubbletea widgets: a list for
// choices, a validated text input, and a textarea for multi-line text.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cwtools/git-cw/internal/wizard"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	posStyle          = lipgloss.NewStyle().Faint(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	detailStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).MarginLeft(2)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
)

// Prompter implements wizard.UI on the terminal.
type Prompter struct{}

// New returns a terminal Prompter.
func New() Prompter { return Prompter{} }

// IsTTY reports whether an interactive terminal is available. Bubbletea
// needs both a terminal on stdout and a readable /dev/tty.
func IsTTY() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return false
	}
	defer tty.Close()

	return true
}

func heading(title string, pos wizard.Position) string {
	if p := pos.String(); p != "" {
		return strings.TrimSpace(title) + " " + posStyle.Render(p)
	}
	return strings.TrimSpace(title)
}
