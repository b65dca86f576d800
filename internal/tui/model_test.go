package tui

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/hylla/kanvas/internal/app"
	"github.com/hylla/kanvas/internal/domain"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) write(text string) error {
	f.text = text
	return f.err
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	store, err := app.NewSeededStore(app.DefaultSeed(), nil)
	if err != nil {
		t.Fatalf("NewSeededStore() error = %v", err)
	}
	m := NewModel(store, opts...)
	// 90x30 board cells: each cell is 10x20 logical units
	return applyMsg(t, m, tea.WindowSizeMsg{Width: 90, Height: 32})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return out
}

func statusOf(m Model, id string) domain.Status {
	for _, task := range m.Board().Tasks() {
		if task.ID == id {
			return task.Status
		}
	}
	return ""
}

func TestModelDragsCardAcrossColumns(t *testing.T) {
	m := newTestModel(t)

	m = applyMsg(t, m, tea.MouseClickMsg{X: 10, Y: 4, Button: tea.MouseLeft})
	if !m.Dragging() || m.Board().Drag().TaskID != "1" {
		t.Fatalf("expected Do dishes lifted, drag=%#v", m.Board().Drag())
	}
	if !strings.Contains(m.render(), "dragging Do dishes") {
		t.Fatal("expected dragging status in the title row")
	}

	m = applyMsg(t, m, tea.MouseMotionMsg{X: 40, Y: 4, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: 40, Y: 4, Button: tea.MouseLeft})

	if got := statusOf(m, "1"); got != domain.StatusOngoing {
		t.Fatalf("expected Do dishes ongoing, got %q", got)
	}
	if m.Dragging() {
		t.Fatal("expected selection restored after drop")
	}
	if m.status != "Do dishes in Ongoing" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelIgnoresNonLeftAndMisses(t *testing.T) {
	m := newTestModel(t)
	redraws := m.Board().Redraws()

	m = applyMsg(t, m, tea.MouseClickMsg{X: 10, Y: 4, Button: tea.MouseRight})
	m = applyMsg(t, m, tea.MouseClickMsg{X: 45, Y: 25, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: 70, Y: 25})

	if m.Board().Drag().Active() {
		t.Fatal("expected no drag")
	}
	if m.Board().Redraws() != redraws {
		t.Fatalf("expected no redraw, got %d extra", m.Board().Redraws()-redraws)
	}
}

func TestModelEscCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, tea.MouseClickMsg{X: 10, Y: 4, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseMotionMsg{X: 70, Y: 4, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})

	if m.Board().Drag().Active() || m.Dragging() {
		t.Fatal("expected drag cancelled")
	}
	if got := statusOf(m, "1"); got != domain.StatusIncompleted {
		t.Fatalf("expected status unchanged, got %q", got)
	}
	if m.status != "drag cancelled" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelCopiesBoardSummary(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(t, WithClipboard(clip.write))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'y', Text: "y"})

	want := "Incompleted: Do dishes, Learn React\nOngoing: Read book\nCompleted: Buy milk"
	if clip.text != want {
		t.Fatalf("unexpected clipboard text %q", clip.text)
	}
	if m.status != "board copied" {
		t.Fatalf("unexpected status %q", m.status)
	}

	clip.err = errors.New("no clipboard")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'y', Text: "y"})
	if !strings.Contains(m.status, "no clipboard") {
		t.Fatalf("expected copy failure status, got %q", m.status)
	}
}

func TestModelKeyConfigOverrides(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(t, WithClipboard(clip.write), WithKeyConfig(KeyConfig{Copy: "c"}))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'y', Text: "y"})
	if clip.text != "" {
		t.Fatal("expected default copy key unbound")
	}
	applyMsg(t, m, tea.KeyPressMsg{Code: 'c', Text: "c"})
	if clip.text == "" {
		t.Fatal("expected configured copy key to copy")
	}
}

func TestModelQuitAndHelp(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: '?', Text: "?"})
	if !m.showHelp {
		t.Fatal("expected help panel open")
	}
	m = applyMsg(t, m, tea.MouseClickMsg{X: 10, Y: 4, Button: tea.MouseLeft})
	if m.Board().Drag().Active() {
		t.Fatal("expected clicks ignored while help is open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.showHelp {
		t.Fatal("expected esc to close help")
	}
}

func TestModelViewShowsBoard(t *testing.T) {
	m := NewModel(nil)
	if got := m.render(); !strings.Contains(got, "loading") {
		t.Fatalf("expected loading view before sizing, got %q", got)
	}

	m = newTestModel(t)
	v := m.View()
	if v.Content == nil || v.MouseMode != tea.MouseModeCellMotion || !v.AltScreen {
		t.Fatal("expected cell-motion mouse mode in the alt screen")
	}
	content := ansi.Strip(m.render())
	for _, want := range []string{"kanvas", "Incompleted", "Do dishes", "quit"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestParseBindingKeys(t *testing.T) {
	cases := []struct {
		raw, fallback string
		keys          []string
		help          string
	}{
		{raw: "space", fallback: ".", keys: []string{" ", "space"}, help: "space"},
		{raw: "Z", fallback: "z", keys: []string{"Z", "shift+z"}, help: "Z"},
		{raw: "Ctrl+R", fallback: "r", keys: []string{"ctrl+r"}, help: "Ctrl+R"},
		{raw: "", fallback: "x", keys: []string{"x"}, help: "x"},
	}
	for _, tc := range cases {
		keys, help := parseBindingKeys(tc.raw, tc.fallback)
		if strings.Join(keys, "|") != strings.Join(tc.keys, "|") || help != tc.help {
			t.Fatalf("parseBindingKeys(%q) = %#v %q", tc.raw, keys, help)
		}
	}
}
