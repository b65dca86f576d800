package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap holds the board's key bindings.
type keyMap struct {
	quit       key.Binding
	cancel     key.Binding
	toggleHelp key.Binding
	copy       key.Binding
}

// newKeyMap constructs the default bindings.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy board")),
	}
}

// applyConfig overrides bindings from configuration. ctrl+c always quits.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.quit, cfg.Quit, "q", "quit")
	k.quit.SetKeys(append(k.quit.Keys(), "ctrl+c")...)
	configureBinding(&k.cancel, cfg.Cancel, "esc", "cancel drag")
	configureBinding(&k.toggleHelp, cfg.Help, "?", "toggle help")
	configureBinding(&k.copy, cfg.Copy, "y", "copy board")
}

// configureBinding replaces the keys and help text of one binding.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys turns a configured key into matcher keys and help text.
// Uppercase runes also match their shift+ form.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = fallback
	}
	if strings.EqualFold(value, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + strings.ToLower(value)}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}

// ShortHelp returns the footer bindings.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.cancel, k.copy, k.toggleHelp, k.quit}
}

// FullHelp returns the expanded help bindings.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.cancel, k.copy},
		{k.toggleHelp, k.quit},
	}
}
