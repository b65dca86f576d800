package render

import (
	"github.com/hylla/kanvas/internal/domain"
	"github.com/hylla/kanvas/internal/drag"
	"github.com/hylla/kanvas/internal/layout"
)

// TaskSource is the read side of the task store.
type TaskSource interface {
	TasksIn(domain.Status) []domain.Task
	Task(id string) (domain.Task, bool)
}

// Frame is the output of one render pass: the commands to draw and the card
// placements to hit-test against until the next pass.
type Frame struct {
	Commands []Command
	Layout   layout.Layout
}

// Renderer draws the board. It keeps no state between frames.
type Renderer struct {
	Geometry layout.Geometry
	Palette  Palette
}

// NewRenderer constructs a renderer.
func NewRenderer(g layout.Geometry, p Palette) Renderer {
	return Renderer{Geometry: g, Palette: p}
}

// Render computes one frame from scratch.
func (r Renderer) Render(tasks TaskSource, st drag.State) Frame {
	g := r.Geometry
	p := r.Palette
	cmds := make([]Command, 0, 32)
	placements := make(layout.Layout, 0, 8)

	cmds = append(cmds, Command{Op: OpClear, Rect: g.Canvas(), Style: Style{Fill: p.Background}})

	for colIdx, col := range domain.Columns() {
		cmds = append(cmds,
			Command{Op: OpFillRect, Rect: g.ColumnBand(colIdx), Style: Style{Fill: p.Band}},
			Command{Op: OpText, Text: col.Label, At: g.LabelAnchor(colIdx), Style: Style{Text: p.Label, Font: FontLabel}},
		)
		if tasks == nil {
			continue
		}
		for rowIdx, task := range tasks.TasksIn(col.Key) {
			// The lifted card keeps its slot but is neither drawn here nor
			// offered as a hit target.
			if st.Holds(task.ID) {
				continue
			}
			rect := g.RectFor(colIdx, rowIdx)
			cmds = append(cmds, r.card(task, rect, r.restingStyle())...)
			placements = append(placements, layout.Placement{TaskID: task.ID, Rect: rect})
		}
	}

	if st.Active() && tasks != nil {
		if task, ok := tasks.Task(st.TaskID); ok {
			rect := layout.Rect{W: g.CardWidth(), H: g.RowHeight}.At(st.CardOrigin())
			cmds = append(cmds, r.card(task, rect, r.liftedStyle())...)
		}
	}

	return Frame{Commands: cmds, Layout: placements}
}

// card emits the body, outline and title of one card.
func (r Renderer) card(task domain.Task, rect layout.Rect, body Style) []Command {
	text := Style{Text: body.Text, Font: FontCard, Lifted: body.Lifted}
	return []Command{
		{Op: OpFillRect, Rect: rect, Style: body},
		{Op: OpStrokeRect, Rect: rect, Style: body},
		{Op: OpText, Text: task.Title, At: r.Geometry.TextAnchor(rect), Style: text},
	}
}

func (r Renderer) restingStyle() Style {
	p := r.Palette
	return Style{
		Fill:      p.Card,
		Stroke:    p.CardStroke,
		Text:      p.CardText,
		LineWidth: 2,
		Shadow:    Shadow{Color: p.CardShadow, Alpha: 0.08, Blur: 6},
	}
}

func (r Renderer) liftedStyle() Style {
	p := r.Palette
	return Style{
		Fill:      p.DragFill,
		Stroke:    p.DragStroke,
		Text:      p.DragText,
		LineWidth: 2,
		Alpha:     p.DragAlpha,
		Shadow:    Shadow{Color: p.DragShadow, Alpha: 0.22, Blur: 10},
		Lifted:    true,
	}
}
