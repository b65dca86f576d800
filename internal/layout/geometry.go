// Package layout maps board positions to logical-space rectangles and back.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// Point is a position in the logical coordinate space.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// At returns the same-sized rectangle moved to origin.
func (r Rect) At(origin Point) Rect {
	return Rect{X: origin.X, Y: origin.Y, W: r.W, H: r.H}
}

// Contains reports whether p lies strictly inside r. Edges never hit.
func (r Rect) Contains(p Point) bool {
	return p.X > r.X && p.X < r.X+r.W &&
		p.Y > r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Board geometry defaults.
const (
	DefaultCanvasWidth  = 900
	DefaultCanvasHeight = 600
	DefaultRowHeight    = 60
	DefaultGap          = 16
	DefaultHeaderOffset = 50

	columnCount  = 3
	labelInsetX  = 24
	labelBaseY   = 36
	textInsetX   = 18
	textBaseline = 36
)

// Geometry holds the fixed constants the board is laid out with.
type Geometry struct {
	CanvasWidth  float64
	CanvasHeight float64
	RowHeight    float64
	Gap          float64
	HeaderOffset float64
}

// DefaultGeometry returns the standard 900x600 board.
func DefaultGeometry() Geometry {
	return Geometry{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		RowHeight:    DefaultRowHeight,
		Gap:          DefaultGap,
		HeaderOffset: DefaultHeaderOffset,
	}
}

// ColumnWidth is a third of the canvas width.
func (g Geometry) ColumnWidth() float64 {
	return g.CanvasWidth / columnCount
}

// CardWidth is the column width minus a gap on each side.
func (g Geometry) CardWidth() float64 {
	return g.ColumnWidth() - 2*g.Gap
}

// RectFor returns the card rectangle for a column and row. Out-of-range
// indices yield well-defined rectangles off the board.
func (g Geometry) RectFor(col, row int) Rect {
	return Rect{
		X: float64(col)*g.ColumnWidth() + g.Gap,
		Y: g.HeaderOffset + float64(row)*(g.RowHeight+g.Gap),
		W: g.CardWidth(),
		H: g.RowHeight,
	}
}

// ColumnAt returns floor(x / columnWidth). The result may be outside [0, 2].
func (g Geometry) ColumnAt(x float64) int {
	return int(math.Floor(x / g.ColumnWidth()))
}

// ColumnBand returns the full-height background band of a column.
func (g Geometry) ColumnBand(col int) Rect {
	return Rect{
		X: float64(col) * g.ColumnWidth(),
		Y: 0,
		W: g.ColumnWidth(),
		H: g.CanvasHeight,
	}
}

// Canvas returns the whole drawing surface.
func (g Geometry) Canvas() Rect {
	return Rect{W: g.CanvasWidth, H: g.CanvasHeight}
}

// LabelAnchor returns the text baseline origin of a column label.
func (g Geometry) LabelAnchor(col int) Point {
	return Point{X: float64(col)*g.ColumnWidth() + labelInsetX, Y: labelBaseY}
}

// TextAnchor returns the text baseline origin of a card title.
func (g Geometry) TextAnchor(card Rect) Point {
	return Point{X: card.X + textInsetX, Y: card.Y + textBaseline}
}

// ErrInvalidGeometry reports unusable board constants.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Validate rejects constants that cannot lay out a board. The layout
// functions themselves never fail.
func (g Geometry) Validate() error {
	switch {
	case g.CanvasWidth <= 0 || g.CanvasHeight <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidGeometry, g.CanvasWidth, g.CanvasHeight)
	case g.RowHeight <= 0:
		return fmt.Errorf("%w: row height must be positive, got %g", ErrInvalidGeometry, g.RowHeight)
	case g.Gap < 0:
		return fmt.Errorf("%w: gap must be >= 0, got %g", ErrInvalidGeometry, g.Gap)
	case g.HeaderOffset < 0:
		return fmt.Errorf("%w: header offset must be >= 0, got %g", ErrInvalidGeometry, g.HeaderOffset)
	case g.CardWidth() <= 0:
		return fmt.Errorf("%w: gap %g leaves no room for cards", ErrInvalidGeometry, g.Gap)
	}
	return nil
}
