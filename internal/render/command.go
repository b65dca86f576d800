// Package render turns board data and drag state into draw commands.
package render

import (
	"errors"

	"github.com/hylla/kanvas/internal/layout"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidPalette reports unparseable palette colors.
var ErrInvalidPalette = errors.New("invalid palette")

// Op identifies a draw command.
type Op int

// Draw operations.
const (
	OpClear Op = iota
	OpFillRect
	OpStrokeRect
	OpText
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpFillRect:
		return "fill"
	case OpStrokeRect:
		return "stroke"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// FontRole selects the face a text command is drawn with.
type FontRole int

// Font roles.
const (
	FontCard FontRole = iota
	FontLabel
)

// Size returns the nominal point size of the role.
func (f FontRole) Size() float64 {
	if f == FontLabel {
		return 22
	}
	return 18
}

// Shadow is a soft drop shadow under a filled shape.
type Shadow struct {
	Color colorful.Color
	Alpha float64
	Blur  float64
}

// Style carries the paint state of one command.
type Style struct {
	Fill      colorful.Color
	Stroke    colorful.Color
	Text      colorful.Color
	LineWidth float64
	// Alpha is the shape opacity; zero means opaque.
	Alpha  float64
	Shadow Shadow
	Font   FontRole
	// Lifted marks the card being dragged.
	Lifted bool
}

// Opacity returns the effective opacity in (0, 1].
func (s Style) Opacity() float64 {
	if s.Alpha <= 0 || s.Alpha > 1 {
		return 1
	}
	return s.Alpha
}

// Command is one draw instruction.
type Command struct {
	Op    Op
	Rect  layout.Rect
	At    layout.Point
	Text  string
	Style Style
}

// Surface executes draw commands onto a raster target.
type Surface interface {
	Clear(Style)
	FillRect(layout.Rect, Style)
	StrokeRect(layout.Rect, Style)
	Text(string, layout.Point, Style)
}

// Paint replays commands onto a surface in order.
func Paint(s Surface, cmds []Command) {
	if s == nil {
		return
	}
	for _, cmd := range cmds {
		switch cmd.Op {
		case OpClear:
			s.Clear(cmd.Style)
		case OpFillRect:
			s.FillRect(cmd.Rect, cmd.Style)
		case OpStrokeRect:
			s.StrokeRect(cmd.Rect, cmd.Style)
		case OpText:
			s.Text(cmd.Text, cmd.At, cmd.Style)
		}
	}
}
