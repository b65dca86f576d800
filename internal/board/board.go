// Package board composes the task store, renderer and drag controller into
// a pointer-driven widget.
package board

import (
	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/kanvas/internal/app"
	"github.com/hylla/kanvas/internal/domain"
	"github.com/hylla/kanvas/internal/drag"
	"github.com/hylla/kanvas/internal/layout"
	"github.com/hylla/kanvas/internal/render"
)

// Option configures a Board.
type Option func(*Board)

// WithGeometry sets the board geometry.
func WithGeometry(g layout.Geometry) Option {
	return func(b *Board) {
		b.geometry = g
	}
}

// WithPalette sets the board colors.
func WithPalette(p render.Palette) Option {
	return func(b *Board) {
		b.palette = p
	}
}

// WithSurface paints every frame onto s.
func WithSurface(s render.Surface) Option {
	return func(b *Board) {
		b.surface = s
	}
}

// WithSelectionSuppressor forwards drag edges to the host.
func WithSelectionSuppressor(s drag.SelectionSuppressor) Option {
	return func(b *Board) {
		b.selection = s
	}
}

// WithLogger enables debug logging.
func WithLogger(logger *charmLog.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

// Board is the interactive widget. Pointer handlers mutate state and then
// render synchronously, so Frame always reflects the current data and drag.
// It is driven from one event loop and does no locking.
type Board struct {
	store     *app.Store
	geometry  layout.Geometry
	palette   render.Palette
	surface   render.Surface
	selection drag.SelectionSuppressor
	logger    *charmLog.Logger

	renderer render.Renderer
	ctrl     *drag.Controller
	frame    render.Frame
	redraws  int
}

// New builds the widget and renders the first frame. A nil store is an
// empty board.
func New(store *app.Store, opts ...Option) *Board {
	if store == nil {
		store, _ = app.NewStore(nil)
	}
	b := &Board{
		store:    store,
		geometry: layout.DefaultGeometry(),
		palette:  render.DefaultPalette(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.renderer = render.NewRenderer(b.geometry, b.palette)
	b.ctrl = drag.NewController(store, b.publishedLayout,
		drag.WithGeometry(b.geometry),
		drag.WithSelectionSuppressor(b.selection),
		drag.WithLogger(b.logger),
	)
	b.Redraw()
	return b
}

// publishedLayout hands the controller the placements of the latest frame.
func (b *Board) publishedLayout() layout.Layout {
	return b.frame.Layout
}

// PointerDown forwards a press in logical coordinates.
func (b *Board) PointerDown(p layout.Point) bool {
	return b.after(b.ctrl.PointerDown(p))
}

// PointerMove forwards pointer motion in logical coordinates.
func (b *Board) PointerMove(p layout.Point) bool {
	return b.after(b.ctrl.PointerMove(p))
}

// PointerUp forwards a release in logical coordinates.
func (b *Board) PointerUp(p layout.Point) bool {
	return b.after(b.ctrl.PointerUp(p))
}

// Cancel abandons a running drag.
func (b *Board) Cancel() bool {
	return b.after(b.ctrl.Cancel())
}

func (b *Board) after(changed bool) bool {
	if changed {
		b.Redraw()
	}
	return changed
}

// SetSurface swaps the paint target and repaints the current frame on it.
func (b *Board) SetSurface(s render.Surface) {
	b.surface = s
	render.Paint(b.surface, b.frame.Commands)
}

// Redraw renders from scratch, publishes the layout and paints the surface.
func (b *Board) Redraw() render.Frame {
	b.frame = b.renderer.Render(b.store, b.ctrl.State())
	b.redraws++
	render.Paint(b.surface, b.frame.Commands)
	return b.frame
}

// Frame returns the most recent frame.
func (b *Board) Frame() render.Frame {
	return b.frame
}

// Drag returns the current drag state.
func (b *Board) Drag() drag.State {
	return b.ctrl.State()
}

// Tasks returns the tasks in store order.
func (b *Board) Tasks() []domain.Task {
	return b.store.Tasks()
}

// TasksIn returns one column's tasks.
func (b *Board) TasksIn(status domain.Status) []domain.Task {
	return b.store.TasksIn(status)
}

// Geometry returns the board geometry.
func (b *Board) Geometry() layout.Geometry {
	return b.geometry
}

// Redraws counts render passes since construction, the first included.
func (b *Board) Redraws() int {
	return b.redraws
}
