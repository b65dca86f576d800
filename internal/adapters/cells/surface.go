// Package cells paints board frames onto a grid of terminal cells.
package cells

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/hylla/kanvas/internal/layout"
	"github.com/hylla/kanvas/internal/render"
	"github.com/lucasb-eyer/go-colorful"
)

// glyphMiddle is the distance from baseline to the middle of lowercase
// glyphs, as a fraction of the font size.
const glyphMiddle = 0.35

// Cell is one terminal character with its colors.
type Cell struct {
	Rune rune
	FG   colorful.Color
	BG   colorful.Color
	Bold bool
}

// Surface implements render.Surface on a cols x rows grid. Every cell covers
// an equal share of the logical canvas.
type Surface struct {
	cols, rows int
	cellW      float64
	cellH      float64
	grid       [][]Cell
}

// New allocates a grid covering g's canvas. Non-positive sizes become 1.
func New(g layout.Geometry, cols, rows int) *Surface {
	cols = max(cols, 1)
	rows = max(rows, 1)
	s := &Surface{
		cols:  cols,
		rows:  rows,
		cellW: g.CanvasWidth / float64(cols),
		cellH: g.CanvasHeight / float64(rows),
		grid:  make([][]Cell, rows),
	}
	for row := range s.grid {
		s.grid[row] = make([]Cell, cols)
		for col := range s.grid[row] {
			s.grid[row][col] = Cell{Rune: ' '}
		}
	}
	return s
}

// Size returns the grid dimensions.
func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Cell returns the cell at col,row.
func (s *Surface) Cell(col, row int) (Cell, bool) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return Cell{}, false
	}
	return s.grid[row][col], true
}

// Clear resets every cell to a blank of the fill color.
func (s *Surface) Clear(st render.Style) {
	for row := range s.grid {
		for col := range s.grid[row] {
			s.grid[row][col] = Cell{Rune: ' ', FG: st.Fill, BG: st.Fill}
		}
	}
}

// FillRect blends the fill into every cell whose center lies inside r and
// blanks the rune underneath.
func (s *Surface) FillRect(r layout.Rect, st render.Style) {
	c0, c1, r0, r1, ok := s.span(r)
	if !ok {
		return
	}
	opacity := st.Opacity()
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cell := &s.grid[row][col]
			cell.BG = cell.BG.BlendRgb(st.Fill, opacity).Clamped()
			cell.FG = cell.BG
			cell.Rune = ' '
			cell.Bold = false
		}
	}
}

// StrokeRect draws a box-drawing outline along the edge cells of r.
func (s *Surface) StrokeRect(r layout.Rect, st render.Style) {
	c0, c1, r0, r1, ok := s.span(r)
	if !ok {
		return
	}
	opacity := st.Opacity()
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			ch := edgeRune(col, row, c0, c1, r0, r1)
			if ch == 0 {
				continue
			}
			cell := &s.grid[row][col]
			cell.Rune = ch
			cell.FG = cell.BG.BlendRgb(st.Stroke, opacity).Clamped()
		}
	}
}

func edgeRune(col, row, c0, c1, r0, r1 int) rune {
	top, bottom := row == r0, row == r1
	left, right := col == c0, col == c1
	switch {
	case r0 == r1 && c0 == c1:
		return '□'
	case r0 == r1:
		return '─'
	case c0 == c1:
		return '│'
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	default:
		return 0
	}
}

// Text writes str on the row holding the middle of the glyphs above the
// baseline anchor, clipped at the grid edge.
func (s *Surface) Text(str string, at layout.Point, st render.Style) {
	col := int(math.Floor(at.X / s.cellW))
	row := int(math.Floor((at.Y - glyphMiddle*st.Font.Size()) / s.cellH))
	if row < 0 || row >= s.rows {
		return
	}
	opacity := st.Opacity()
	for _, ch := range str {
		if col >= s.cols {
			return
		}
		if col >= 0 {
			cell := &s.grid[row][col]
			cell.Rune = ch
			cell.FG = cell.BG.BlendRgb(st.Text, opacity).Clamped()
			cell.Bold = st.Font == render.FontLabel
		}
		col++
	}
}

// span returns the inclusive cell range whose centers fall inside r.
func (s *Surface) span(r layout.Rect) (c0, c1, r0, r1 int, ok bool) {
	c0 = max(int(math.Ceil(r.X/s.cellW-0.5)), 0)
	c1 = min(int(math.Ceil((r.X+r.W)/s.cellW-0.5))-1, s.cols-1)
	r0 = max(int(math.Ceil(r.Y/s.cellH-0.5)), 0)
	r1 = min(int(math.Ceil((r.Y+r.H)/s.cellH-0.5))-1, s.rows-1)
	return c0, c1, r0, r1, c0 <= c1 && r0 <= r1
}

// Render emits the grid as styled lines, one lipgloss style per run of
// equally styled cells.
func (s *Surface) Render() string {
	lines := make([]string, 0, s.rows)
	for _, cells := range s.grid {
		var b strings.Builder
		start := 0
		for idx := 1; idx <= len(cells); idx++ {
			if idx < len(cells) && sameStyle(cells[idx], cells[start]) {
				continue
			}
			b.WriteString(cellStyle(cells[start]).Render(runes(cells[start:idx])))
			start = idx
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Plain emits the grid runes without styling.
func (s *Surface) Plain() string {
	lines := make([]string, 0, s.rows)
	for _, cells := range s.grid {
		lines = append(lines, runes(cells))
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b Cell) bool {
	return a.Bold == b.Bold && a.FG.Hex() == b.FG.Hex() && a.BG.Hex() == b.BG.Hex()
}

func cellStyle(c Cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.FG.Hex())).
		Background(lipgloss.Color(c.BG.Hex())).
		Bold(c.Bold)
}

func runes(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.Rune)
	}
	return b.String()
}
