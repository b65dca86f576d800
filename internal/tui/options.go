package tui

import (
	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/kanvas/internal/layout"
	"github.com/hylla/kanvas/internal/render"
)

// KeyConfig overrides the default key bindings. Blank fields keep defaults.
type KeyConfig struct {
	Quit   string
	Cancel string
	Help   string
	Copy   string
}

// Clipboard writes text to the system clipboard.
type Clipboard func(text string) error

type Option func(*Model)

func WithGeometry(g layout.Geometry) Option {
	return func(m *Model) {
		m.geometry = g
	}
}

func WithPalette(p render.Palette) Option {
	return func(m *Model) {
		m.palette = p
	}
}

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

// WithClipboard replaces the system clipboard used by the copy key.
func WithClipboard(c Clipboard) Option {
	return func(m *Model) {
		if c != nil {
			m.clipboard = c
		}
	}
}

func WithLogger(logger *charmLog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}
