package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/widgetbox/internal/widget"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := newKeyRegistry([]keyBinding{
		{Keys: []string{"ctrl+p"}, Action: "pause", Scopes: []string{"guess"}},
		{Keys: []string{"ctrl+p"}, Action: "preset", Scopes: []string{"tip"}},
		{Keys: []string{"esc"}, Action: "quit", Scopes: []string{scopeGlobal}},
	})
	ctrlP := tea.KeyMsg{Type: tea.KeyCtrlP}
	require.Equal(t, "pause", reg.action(ctrlP, "guess"))
	require.Equal(t, "preset", reg.action(ctrlP, "tip"))
	require.Empty(t, reg.action(ctrlP, "clock"))
	require.Equal(t, "quit", reg.action(tea.KeyMsg{Type: tea.KeyEsc}, "clock"))
}

func TestDefaultBindingsCoverEveryWidget(t *testing.T) {
	reg := newKeyRegistry(defaultKeyBindings())
	for _, w := range widget.All() {
		require.NotEmpty(t, reg.bindingsForScope(string(w.ID)), w.ID)
	}
}

func TestKeyHelpFoldsDuplicates(t *testing.T) {
	reg := newKeyRegistry(defaultKeyBindings())
	help := reg.help(string(widget.Joke))
	require.Equal(t, [][2]string{{"enter/n", "another joke"}}, help)

	for _, h := range reg.help(string(widget.Tip)) {
		require.NotEmpty(t, h[1])
	}
}
