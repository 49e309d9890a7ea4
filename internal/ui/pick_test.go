package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickModelWith(labels ...string) pickModel {
	items := make([]list.Item, 0, len(labels))
	for _, l := range labels {
		items = append(items, pickItem{label: l})
	}
	return pickModel{list: list.New(items, pickDelegate{}, defaultWidth, maxListHeight)}
}

func TestPickModelAcceptMarksDone(t *testing.T) {
	m := pickModelWith("feat", "fix")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := updated.(pickModel)
	require.True(t, got.done)
	assert.False(t, got.cancelled)
	assert.Equal(t, "feat", got.choice)
}

// Acceptance is tracked by its own flag, so an option whose label is the
// empty string is still distinguishable from a dismissed list.
func TestPickModelAcceptsEmptyLabel(t *testing.T) {
	m := pickModelWith("")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := updated.(pickModel)
	require.True(t, got.done)
	assert.False(t, got.cancelled)
	assert.Empty(t, got.choice)
}

func TestPickModelEscCancels(t *testing.T) {
	m := pickModelWith("feat")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	got := updated.(pickModel)
	require.True(t, got.cancelled)
	assert.False(t, got.done)
}
