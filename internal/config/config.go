package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/kanvas/internal/domain"
	"github.com/hylla/kanvas/internal/layout"
	"github.com/hylla/kanvas/internal/render"
	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Palette PaletteConfig `toml:"palette"`
	Font    FontConfig    `toml:"font"`
	Render  RenderConfig  `toml:"render"`
	Logging LoggingConfig `toml:"logging"`
	Keys    KeyConfig     `toml:"keys"`
	Tasks   []TaskConfig  `toml:"tasks"`
}

type CanvasConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	RowHeight    float64 `toml:"row_height"`
	Gap          float64 `toml:"gap"`
	HeaderOffset float64 `toml:"header_offset"`
}

type PaletteConfig struct {
	Background string  `toml:"background"`
	Band       string  `toml:"band"`
	Label      string  `toml:"label"`
	Card       string  `toml:"card"`
	CardStroke string  `toml:"card_stroke"`
	CardText   string  `toml:"card_text"`
	CardShadow string  `toml:"card_shadow"`
	DragFill   string  `toml:"drag_fill"`
	DragStroke string  `toml:"drag_stroke"`
	DragText   string  `toml:"drag_text"`
	DragShadow string  `toml:"drag_shadow"`
	DragAlpha  float64 `toml:"drag_alpha"`
}

type FontConfig struct {
	// Path to a TrueType font; empty uses the built-in bitmap face.
	Path string `toml:"path"`
}

type RenderConfig struct {
	Output string  `toml:"output"`
	Scale  float64 `toml:"scale"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type KeyConfig struct {
	Quit   string `toml:"quit"`
	Cancel string `toml:"cancel"`
	Help   string `toml:"help"`
	Copy   string `toml:"copy"`
}

// TaskConfig seeds one board task. A blank id is generated at startup.
type TaskConfig struct {
	ID     string `toml:"id"`
	Title  string `toml:"title"`
	Status string `toml:"status"`
}

func Default(outputPath string) Config {
	hex := render.DefaultPaletteHex()
	return Config{
		Canvas: CanvasConfig{
			Width:        layout.DefaultCanvasWidth,
			Height:       layout.DefaultCanvasHeight,
			RowHeight:    layout.DefaultRowHeight,
			Gap:          layout.DefaultGap,
			HeaderOffset: layout.DefaultHeaderOffset,
		},
		Palette: PaletteConfig{
			Background: hex.Background,
			Band:       hex.Band,
			Label:      hex.Label,
			Card:       hex.Card,
			CardStroke: hex.CardStroke,
			CardText:   hex.CardText,
			CardShadow: hex.CardShadow,
			DragFill:   hex.DragFill,
			DragStroke: hex.DragStroke,
			DragText:   hex.DragText,
			DragShadow: hex.DragShadow,
			DragAlpha:  hex.DragAlpha,
		},
		Render: RenderConfig{
			Output: outputPath,
			Scale:  1,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".kanvas/log",
			},
		},
		Keys: KeyConfig{
			Quit:   "q",
			Cancel: "esc",
			Help:   "?",
			Copy:   "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	// [[tasks]] replaces the default list rather than extending it.
	cfg.Tasks = nil
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if len(cfg.Tasks) == 0 {
		cfg.Tasks = defaults.Tasks
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Geometry().Validate(); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	if _, err := c.ParsedPalette(); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be > 0, got %g", c.Render.Scale)
	}
	if _, err := charmLog.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	if path := strings.TrimSpace(c.Font.Path); path != "" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("font.path: %w", err)
		}
	}

	seenID := map[string]struct{}{}
	for idx, task := range c.Tasks {
		if strings.TrimSpace(task.Title) == "" {
			return fmt.Errorf("tasks[%d].title is required", idx)
		}
		if _, err := domain.ParseStatus(task.Status); err != nil {
			return fmt.Errorf("tasks[%d].status: %w", idx, err)
		}
		id := strings.TrimSpace(task.ID)
		if id == "" {
			continue
		}
		if _, ok := seenID[id]; ok {
			return fmt.Errorf("tasks[%d].id is duplicated: %s", idx, id)
		}
		seenID[id] = struct{}{}
	}

	return nil
}

// Geometry returns the board geometry described by [canvas].
func (c Config) Geometry() layout.Geometry {
	return layout.Geometry{
		CanvasWidth:  c.Canvas.Width,
		CanvasHeight: c.Canvas.Height,
		RowHeight:    c.Canvas.RowHeight,
		Gap:          c.Canvas.Gap,
		HeaderOffset: c.Canvas.HeaderOffset,
	}
}

// ParsedPalette resolves [palette] into render colors.
func (c Config) ParsedPalette() (render.Palette, error) {
	p := c.Palette
	return render.ParsePalette(render.PaletteHex{
		Background: p.Background,
		Band:       p.Band,
		Label:      p.Label,
		Card:       p.Card,
		CardStroke: p.CardStroke,
		CardText:   p.CardText,
		CardShadow: p.CardShadow,
		DragFill:   p.DragFill,
		DragStroke: p.DragStroke,
		DragText:   p.DragText,
		DragShadow: p.DragShadow,
		DragAlpha:  p.DragAlpha,
	})
}

// EnsureConfigDir creates the parent directory of a config path.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
