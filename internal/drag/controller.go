package drag

import (
	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/kanvas/internal/domain"
	"github.com/hylla/kanvas/internal/layout"
)

// TaskMutator is the single store operation a drop needs.
type TaskMutator interface {
	SetStatus(id string, status domain.Status) bool
}

// LayoutSource returns the card placements of the most recent render pass.
type LayoutSource func() layout.Layout

// SelectionSuppressor toggles host-level text selection while a drag runs.
type SelectionSuppressor interface {
	SetSelectionSuppressed(suppressed bool)
}

// SelectionSuppressorFunc adapts a function to SelectionSuppressor.
type SelectionSuppressorFunc func(bool)

// SetSelectionSuppressed calls f.
func (f SelectionSuppressorFunc) SetSelectionSuppressed(suppressed bool) {
	f(suppressed)
}

// Option configures a Controller.
type Option func(*Controller)

// WithGeometry sets the geometry used to resolve drop columns.
func WithGeometry(g layout.Geometry) Option {
	return func(c *Controller) {
		c.geometry = g
	}
}

// WithSelectionSuppressor installs the host selection capability.
func WithSelectionSuppressor(s SelectionSuppressor) Option {
	return func(c *Controller) {
		c.selection = s
	}
}

// WithLogger enables debug logging of drag transitions.
func WithLogger(logger *charmLog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller turns pointer events into drag transitions and drops.
//
// Every handler returns true when the drag state or the task store changed,
// which is the caller's cue to render. A press that arrives while a drag is
// already running is ignored; the drag only ends on release or Cancel.
type Controller struct {
	state     State
	geometry  layout.Geometry
	mutator   TaskMutator
	layout    LayoutSource
	selection SelectionSuppressor
	logger    *charmLog.Logger
}

// NewController constructs an idle controller.
func NewController(mutator TaskMutator, source LayoutSource, opts ...Option) *Controller {
	c := &Controller{
		geometry: layout.DefaultGeometry(),
		mutator:  mutator,
		layout:   source,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns the current drag snapshot.
func (c *Controller) State() State {
	return c.state
}

// PointerDown starts a drag when p is over a card of the last layout.
func (c *Controller) PointerDown(p layout.Point) bool {
	if c.state.Active() {
		c.debug("press ignored during drag", "task_id", c.state.TaskID, "x", p.X, "y", p.Y)
		return false
	}
	if c.layout == nil {
		return false
	}
	hit, ok := c.layout().HitTest(p)
	if !ok {
		return false
	}
	c.state = State{
		Phase:   Dragging,
		TaskID:  hit.TaskID,
		Grab:    p.Sub(hit.Rect.Origin()),
		Pointer: p,
	}
	c.suppressSelection(true)
	c.debug("drag start", "task_id", hit.TaskID, "grab_x", c.state.Grab.X, "grab_y", c.state.Grab.Y)
	return true
}

// PointerMove tracks the pointer during a drag.
func (c *Controller) PointerMove(p layout.Point) bool {
	if !c.state.Active() {
		return false
	}
	c.state.Pointer = p
	return true
}

// PointerUp drops the dragged card into the column under p, if any, and
// always ends the drag.
func (c *Controller) PointerUp(p layout.Point) bool {
	if !c.state.Active() {
		return false
	}
	taskID := c.state.TaskID
	index := c.geometry.ColumnAt(p.X)
	if column, ok := domain.ColumnAt(index); ok {
		changed := false
		if c.mutator != nil {
			changed = c.mutator.SetStatus(taskID, column.Key)
		}
		c.debug("drop", "task_id", taskID, "column", column.Key, "changed", changed)
	} else {
		c.debug("drop outside columns", "task_id", taskID, "column_index", index)
	}
	c.end()
	return true
}

// Cancel abandons a running drag without touching the store.
func (c *Controller) Cancel() bool {
	if !c.state.Active() {
		return false
	}
	c.debug("drag cancelled", "task_id", c.state.TaskID)
	c.end()
	return true
}

// end returns to Idle and releases the selection suppression.
func (c *Controller) end() {
	c.state = State{}
	c.suppressSelection(false)
}

func (c *Controller) suppressSelection(on bool) {
	if c.selection != nil {
		c.selection.SetSelectionSuppressed(on)
	}
}

func (c *Controller) debug(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keyvals...)
	}
}
