package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hylla/kanvas/internal/adapters/raster"
	"github.com/hylla/kanvas/internal/board"
	"github.com/hylla/kanvas/internal/layout"
	toml "github.com/pelletier/go-toml/v2"
)

// errInvalidScript reports a pointer script that cannot be replayed.
var errInvalidScript = errors.New("invalid replay script")

// eventKind names one pointer event in a replay script.
type eventKind string

const (
	eventDown   eventKind = "down"
	eventMove   eventKind = "move"
	eventUp     eventKind = "up"
	eventCancel eventKind = "cancel"
)

// replayScript is a recorded pointer session. With a viewport, event
// coordinates are device units on that viewport; without one they are
// logical board coordinates.
type replayScript struct {
	Viewport *viewportConfig `toml:"viewport"`
	Events   []replayEvent   `toml:"events"`
}

type viewportConfig struct {
	OriginX float64 `toml:"origin_x"`
	OriginY float64 `toml:"origin_y"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
}

type replayEvent struct {
	Kind eventKind `toml:"kind"`
	X    float64   `toml:"x"`
	Y    float64   `toml:"y"`
}

// loadReplayScript reads and validates a TOML pointer script.
func loadReplayScript(path string) (replayScript, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return replayScript{}, fmt.Errorf("read replay script: %w", err)
	}
	var script replayScript
	if err := toml.Unmarshal(content, &script); err != nil {
		return replayScript{}, fmt.Errorf("decode toml: %w", err)
	}
	for idx := range script.Events {
		ev := &script.Events[idx]
		ev.Kind = eventKind(strings.ToLower(strings.TrimSpace(string(ev.Kind))))
		switch ev.Kind {
		case eventDown, eventMove, eventUp, eventCancel:
		default:
			return replayScript{}, fmt.Errorf("%w: events[%d].kind %q", errInvalidScript, idx, ev.Kind)
		}
	}
	if vp := script.Viewport; vp != nil && (vp.Width <= 0 || vp.Height <= 0) {
		return replayScript{}, fmt.Errorf("%w: viewport must have a positive size", errInvalidScript)
	}
	return script, nil
}

// point maps an event into logical board coordinates.
func (s replayScript) point(ev replayEvent, g layout.Geometry) layout.Point {
	p := layout.Point{X: ev.X, Y: ev.Y}
	if s.Viewport == nil {
		return p
	}
	vp := layout.Viewport{
		OriginX: s.Viewport.OriginX,
		OriginY: s.Viewport.OriginY,
		Width:   s.Viewport.Width,
		Height:  s.Viewport.Height,
	}
	return vp.ToLogical(p, g)
}

// replay feeds the script to b and reports how many events changed it. When
// framesDir is set every changed frame is saved there.
func replay(b *board.Board, surface *raster.Surface, script replayScript, framesDir string) (int, error) {
	if framesDir != "" {
		if err := os.MkdirAll(framesDir, 0o755); err != nil {
			return 0, fmt.Errorf("create frames dir: %w", err)
		}
	}
	changes := 0
	for idx, ev := range script.Events {
		p := script.point(ev, b.Geometry())
		var changed bool
		switch ev.Kind {
		case eventDown:
			changed = b.PointerDown(p)
		case eventMove:
			changed = b.PointerMove(p)
		case eventUp:
			changed = b.PointerUp(p)
		case eventCancel:
			changed = b.Cancel()
		}
		if !changed {
			continue
		}
		changes++
		if framesDir == "" || surface == nil {
			continue
		}
		frame := filepath.Join(framesDir, fmt.Sprintf("frame-%03d.png", idx))
		if err := surface.SavePNG(frame); err != nil {
			return changes, err
		}
	}
	return changes, nil
}
