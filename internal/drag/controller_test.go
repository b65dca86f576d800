package drag

import (
	"bytes"
	"strings"
	"testing"

	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/kanvas/internal/domain"
	"github.com/hylla/kanvas/internal/layout"
)

type setStatusCall struct {
	id     string
	status domain.Status
}

type fakeMutator struct {
	calls []setStatusCall
}

func (f *fakeMutator) SetStatus(id string, status domain.Status) bool {
	f.calls = append(f.calls, setStatusCall{id: id, status: status})
	return true
}

type fakeSuppressor struct {
	calls []bool
}

func (f *fakeSuppressor) SetSelectionSuppressed(on bool) {
	f.calls = append(f.calls, on)
}

func fixedLayout() layout.Layout {
	g := layout.DefaultGeometry()
	return layout.Layout{
		{TaskID: "1", Rect: g.RectFor(0, 0)},
		{TaskID: "4", Rect: g.RectFor(0, 1)},
		{TaskID: "2", Rect: g.RectFor(1, 0)},
	}
}

func newTestController(m *fakeMutator, s *fakeSuppressor) *Controller {
	return NewController(m, fixedLayout, WithSelectionSuppressor(s))
}

func TestPointerDownOnCardStartsDrag(t *testing.T) {
	m, s := &fakeMutator{}, &fakeSuppressor{}
	c := newTestController(m, s)

	if !c.PointerDown(layout.Point{X: 100, Y: 80}) {
		t.Fatal("expected press on card to start a drag")
	}
	st := c.State()
	if !st.Active() || st.TaskID != "1" {
		t.Fatalf("unexpected state %#v", st)
	}
	if st.Grab != (layout.Point{X: 84, Y: 30}) {
		t.Fatalf("unexpected grab offset %#v", st.Grab)
	}
	if st.CardOrigin() != (layout.Point{X: 16, Y: 50}) {
		t.Fatalf("expected card origin to start at its resting place, got %#v", st.CardOrigin())
	}
	if len(s.calls) != 1 || !s.calls[0] {
		t.Fatalf("expected selection suppressed once, got %v", s.calls)
	}
}

func TestPointerDownMissStaysIdle(t *testing.T) {
	m, s := &fakeMutator{}, &fakeSuppressor{}
	c := newTestController(m, s)

	if c.PointerDown(layout.Point{X: 450, Y: 400}) {
		t.Fatal("expected press off cards to be a no-op")
	}
	if c.PointerMove(layout.Point{X: 500, Y: 400}) {
		t.Fatal("expected move while idle to be a no-op")
	}
	if c.PointerUp(layout.Point{X: 500, Y: 400}) {
		t.Fatal("expected release while idle to be a no-op")
	}
	if c.Cancel() {
		t.Fatal("expected cancel while idle to be a no-op")
	}
	if c.State().Active() || len(m.calls) != 0 || len(s.calls) != 0 {
		t.Fatalf("expected untouched controller, state=%#v mutations=%v selection=%v", c.State(), m.calls, s.calls)
	}
}

func TestPointerDownOnCardEdgeMisses(t *testing.T) {
	c := newTestController(&fakeMutator{}, &fakeSuppressor{})
	if c.PointerDown(layout.Point{X: 16, Y: 80}) {
		t.Fatal("expected press on the card edge to miss")
	}
}

func TestMoveKeepsGrabOffset(t *testing.T) {
	c := newTestController(&fakeMutator{}, &fakeSuppressor{})
	c.PointerDown(layout.Point{X: 100, Y: 80})
	grab := c.State().Grab

	for _, p := range []layout.Point{{X: 200, Y: 90}, {X: 420, Y: 300}, {X: -40, Y: 10}} {
		if !c.PointerMove(p) {
			t.Fatalf("expected move to %#v to report a change", p)
		}
		st := c.State()
		if st.Pointer != p {
			t.Fatalf("expected pointer %#v, got %#v", p, st.Pointer)
		}
		if st.Grab != grab {
			t.Fatalf("grab offset changed during drag: %#v -> %#v", grab, st.Grab)
		}
	}
}

func TestDropIntoOtherColumn(t *testing.T) {
	m, s := &fakeMutator{}, &fakeSuppressor{}
	c := newTestController(m, s)
	c.PointerDown(layout.Point{X: 100, Y: 80})
	c.PointerMove(layout.Point{X: 400, Y: 90})

	if !c.PointerUp(layout.Point{X: 400, Y: 90}) {
		t.Fatal("expected release to end the drag")
	}
	if c.State().Active() {
		t.Fatal("expected idle after release")
	}
	if len(m.calls) != 1 || m.calls[0] != (setStatusCall{id: "1", status: domain.StatusOngoing}) {
		t.Fatalf("unexpected SetStatus calls %v", m.calls)
	}
	if len(s.calls) != 2 || !s.calls[0] || s.calls[1] {
		t.Fatalf("expected suppress on then off, got %v", s.calls)
	}
}

func TestDropOutsideColumnsEndsWithoutMutation(t *testing.T) {
	for _, x := range []float64{-5, 900, 1500} {
		m, s := &fakeMutator{}, &fakeSuppressor{}
		c := newTestController(m, s)
		c.PointerDown(layout.Point{X: 100, Y: 80})
		c.PointerMove(layout.Point{X: x, Y: 80})
		if !c.PointerUp(layout.Point{X: x, Y: 80}) {
			t.Fatalf("x=%g: expected release to end the drag", x)
		}
		if c.State().Active() {
			t.Fatalf("x=%g: expected idle", x)
		}
		if len(m.calls) != 0 {
			t.Fatalf("x=%g: expected no store mutation, got %v", x, m.calls)
		}
		if len(s.calls) != 2 || s.calls[1] {
			t.Fatalf("x=%g: expected selection restored, got %v", x, s.calls)
		}
	}
}

func TestPressDuringDragIsIgnored(t *testing.T) {
	m, s := &fakeMutator{}, &fakeSuppressor{}
	c := newTestController(m, s)
	c.PointerDown(layout.Point{X: 100, Y: 80})
	c.PointerMove(layout.Point{X: 350, Y: 80})
	before := c.State()

	if c.PointerDown(layout.Point{X: 400, Y: 80}) {
		t.Fatal("expected second press to be ignored")
	}
	if c.State() != before {
		t.Fatalf("expected drag untouched, got %#v", c.State())
	}
	if len(m.calls) != 0 || len(s.calls) != 1 {
		t.Fatalf("expected no commit and no extra selection toggle, mutations=%v selection=%v", m.calls, s.calls)
	}
}

func TestCancelSkipsStore(t *testing.T) {
	m, s := &fakeMutator{}, &fakeSuppressor{}
	c := newTestController(m, s)
	c.PointerDown(layout.Point{X: 100, Y: 80})
	if !c.Cancel() {
		t.Fatal("expected cancel to end the drag")
	}
	if c.State().Active() || len(m.calls) != 0 {
		t.Fatalf("unexpected state after cancel %#v %v", c.State(), m.calls)
	}
	if len(s.calls) != 2 || s.calls[1] {
		t.Fatalf("expected selection restored, got %v", s.calls)
	}
}

func TestNilCollaboratorsAreTolerated(t *testing.T) {
	c := NewController(nil, nil)
	if c.PointerDown(layout.Point{X: 100, Y: 80}) {
		t.Fatal("expected no drag without a layout source")
	}
	c = NewController(nil, fixedLayout)
	c.PointerDown(layout.Point{X: 100, Y: 80})
	if !c.PointerUp(layout.Point{X: 400, Y: 80}) {
		t.Fatal("expected release to end the drag without a mutator")
	}
}

func TestLoggerRecordsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := charmLog.NewWithOptions(&buf, charmLog.Options{Level: charmLog.DebugLevel})
	c := NewController(&fakeMutator{}, fixedLayout, WithLogger(logger), WithSelectionSuppressor(SelectionSuppressorFunc(func(bool) {})))
	c.PointerDown(layout.Point{X: 100, Y: 80})
	c.PointerUp(layout.Point{X: 700, Y: 80})

	out := buf.String()
	if !strings.Contains(out, "drag start") || !strings.Contains(out, "drop") {
		t.Fatalf("expected drag transitions in log output, got %q", out)
	}
}
