package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Key actions. Global ones apply on every tab; the rest are scoped to a
// widget id.
const (
	actQuit      = "quit"
	actNextTab   = "next-tab"
	actPrevTab   = "prev-tab"
	actTheme     = "toggle-theme"
	actResetAll  = "reset-all"
	actSubmit    = "submit"
	actReset     = "reset"
	actPause     = "pause"
	actAnother   = "another"
	actHourMode  = "hour-mode"
	actFormat    = "cycle-format"
	actFieldUp   = "field-up"
	actFieldDown = "field-down"
	actPreset    = "preset"
	actUpper     = "toggle-upper"
	actLower     = "toggle-lower"
	actNumbers   = "toggle-numbers"
	actSymbols   = "toggle-symbols"
	actCandle    = "light-candle"
	actBalloon   = "pop-balloon"
)

const scopeGlobal = "*"

type keyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type keyRegistry struct {
	bindings []keyBinding
}

func newKeyRegistry(bindings []keyBinding) *keyRegistry {
	return &keyRegistry{bindings: slices.Clone(bindings)}
}

func (r *keyRegistry) bindingsForScope(scope string) []keyBinding {
	out := make([]keyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if slices.Contains(b.Scopes, scope) {
			out = append(out, b)
		}
	}
	return out
}

// action resolves msg to the action bound in scope, falling back to global
// bindings. Empty means the key is not bound.
func (r *keyRegistry) action(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, s := range []string{scope, scopeGlobal} {
		for _, b := range r.bindings {
			if !slices.Contains(b.Scopes, s) {
				continue
			}
			for _, k := range b.Keys {
				if normalizeKey(k) == pressed {
					return b.Action
				}
			}
		}
	}
	return ""
}

// help renders "[keys] description" pairs for scope. Bindings sharing an
// action and description are folded into one entry.
func (r *keyRegistry) help(scope string) [][2]string {
	var out [][2]string
	seen := map[string]bool{}
	for _, b := range r.bindingsForScope(scope) {
		id := b.Action + "|" + b.Description
		if seen[id] || b.Description == "" {
			continue
		}
		seen[id] = true
		out = append(out, [2]string{strings.Join(b.Keys, "/"), b.Description})
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func defaultKeyBindings() []keyBinding {
	return []keyBinding{
		{Keys: []string{"ctrl+c", "esc"}, Action: actQuit, Description: "quit", Scopes: []string{scopeGlobal}},
		{Keys: []string{"tab"}, Action: actNextTab, Description: "next", Scopes: []string{scopeGlobal}},
		{Keys: []string{"shift+tab"}, Action: actPrevTab, Description: "prev", Scopes: []string{scopeGlobal}},
		{Keys: []string{"ctrl+t"}, Action: actTheme, Description: "theme", Scopes: []string{scopeGlobal}},
		{Keys: []string{"ctrl+x"}, Action: actResetAll, Description: "reset data", Scopes: []string{scopeGlobal}},

		{Keys: []string{"enter"}, Action: actSubmit, Description: "set / start / pause", Scopes: []string{"countdown"}},
		{Keys: []string{"ctrl+r"}, Action: actReset, Description: "reset", Scopes: []string{"countdown", "guess", "tip"}},

		{Keys: []string{"enter"}, Action: actSubmit, Description: "guess", Scopes: []string{"guess"}},
		{Keys: []string{"ctrl+p"}, Action: actPause, Description: "pause / resume", Scopes: []string{"guess"}},

		{Keys: []string{"enter"}, Action: actSubmit, Description: "search", Scopes: []string{"weather"}},

		{Keys: []string{"enter", "n"}, Action: actAnother, Description: "another joke", Scopes: []string{"joke"}},

		{Keys: []string{"enter"}, Action: actSubmit, Description: "calculate", Scopes: []string{"calc", "tip"}},

		{Keys: []string{"enter", "h"}, Action: actHourMode, Description: "12 / 24 hour", Scopes: []string{"clock"}},

		{Keys: []string{"enter"}, Action: actSubmit, Description: "convert", Scopes: []string{"color"}},
		{Keys: []string{"ctrl+f"}, Action: actFormat, Description: "format", Scopes: []string{"color"}},

		{Keys: []string{"up"}, Action: actFieldUp, Description: "field", Scopes: []string{"tip"}},
		{Keys: []string{"down"}, Action: actFieldDown, Description: "", Scopes: []string{"tip"}},
		{Keys: []string{"ctrl+p"}, Action: actPreset, Description: "next preset", Scopes: []string{"tip"}},

		{Keys: []string{"enter"}, Action: actSubmit, Description: "generate", Scopes: []string{"password"}},
		{Keys: []string{"alt+u"}, Action: actUpper, Description: "A-Z", Scopes: []string{"password"}},
		{Keys: []string{"alt+l"}, Action: actLower, Description: "a-z", Scopes: []string{"password"}},
		{Keys: []string{"alt+n"}, Action: actNumbers, Description: "0-9", Scopes: []string{"password"}},
		{Keys: []string{"alt+s"}, Action: actSymbols, Description: "symbols", Scopes: []string{"password"}},

		{Keys: []string{"c"}, Action: actCandle, Description: "light candle", Scopes: []string{"birthday"}},
		{Keys: []string{"b"}, Action: actBalloon, Description: "pop balloon", Scopes: []string{"birthday"}},
		{Keys: []string{"enter"}, Action: actSubmit, Description: "celebrate", Scopes: []string{"birthday"}},
		{Keys: []string{"r"}, Action: actReset, Description: "reset", Scopes: []string{"birthday"}},
	}
}
