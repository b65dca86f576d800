// Package tui hosts the board in a terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/kanvas/internal/adapters/cells"
	"github.com/hylla/kanvas/internal/app"
	"github.com/hylla/kanvas/internal/board"
	"github.com/hylla/kanvas/internal/domain"
	"github.com/hylla/kanvas/internal/layout"
	"github.com/hylla/kanvas/internal/render"
)

// chromeRows is the title row plus the help footer.
const chromeRows = 2

// selectionFlag records the board's selection suppression requests. Model is
// copied on every Update, so the flag lives behind a pointer.
type selectionFlag struct {
	suppressed bool
}

// SetSelectionSuppressed records the request. Mouse capture stays on for the
// whole session, so the terminal never selects text under a drag anyway.
func (f *selectionFlag) SetSelectionSuppressed(on bool) {
	f.suppressed = on
}

// Model is the bubbletea model hosting one board.
type Model struct {
	ready  bool
	width  int
	height int

	status   string
	showHelp bool

	help      help.Model
	keys      keyMap
	markdown  *markdownRenderer
	clipboard Clipboard
	logger    *charmLog.Logger

	geometry  layout.Geometry
	palette   render.Palette
	selection *selectionFlag
	board     *board.Board
	surface   *cells.Surface
	viewport  layout.Viewport
}

// NewModel builds a model over store. A nil store shows an empty board.
func NewModel(store *app.Store, opts ...Option) Model {
	m := Model{
		status:    "ready",
		help:      help.New(),
		keys:      newKeyMap(),
		markdown:  &markdownRenderer{},
		clipboard: clipboard.WriteAll,
		geometry:  layout.DefaultGeometry(),
		palette:   render.DefaultPalette(),
		selection: &selectionFlag{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.board = board.New(store,
		board.WithGeometry(m.geometry),
		board.WithPalette(m.palette),
		board.WithSelectionSuppressor(m.selection),
		board.WithLogger(m.logger),
	)
	return m
}

// Init starts with no command; the first WindowSizeMsg sizes the board.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes terminal events to the board.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft || m.showHelp {
			return m, nil
		}
		if m.board.PointerDown(m.logical(msg.X, msg.Y)) {
			m.status = "dragging " + m.draggedTitle()
		}
		return m, nil

	case tea.MouseMotionMsg:
		m.board.PointerMove(m.logical(msg.X, msg.Y))
		return m, nil

	case tea.MouseReleaseMsg:
		id := m.board.Drag().TaskID
		if m.board.PointerUp(m.logical(msg.X, msg.Y)) {
			m.status = m.dropStatus(id)
		}
		return m, nil

	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.board.Cancel() {
			m.status = "drag cancelled"
		}
		return m, nil
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.copy):
		if err := m.clipboard(boardSummary(m.board)); err != nil {
			m.status = "copy failed: " + err.Error()
			if m.logger != nil {
				m.logger.Warn("clipboard write failed", "err", err)
			}
			return m, nil
		}
		m.status = "board copied"
		return m, nil
	default:
		return m, nil
	}
}

// resize sizes a fresh cell surface to the terminal minus the chrome rows.
func (m *Model) resize(width, height int) {
	m.ready = true
	m.width = width
	m.height = height
	cols := max(width, 1)
	rows := max(height-chromeRows, 1)
	m.surface = cells.New(m.geometry, cols, rows)
	m.board.SetSurface(m.surface)
	m.viewport = layout.Viewport{
		OriginX: 0,
		OriginY: 1,
		Width:   float64(cols),
		Height:  float64(rows),
	}
	m.help.SetWidth(max(0, width-2))
}

// logical maps a terminal cell to the board point under the cell center.
func (m Model) logical(x, y int) layout.Point {
	device := layout.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	return m.viewport.ToLogical(device, m.geometry)
}

func (m Model) draggedTitle() string {
	id := m.board.Drag().TaskID
	for _, task := range m.board.Tasks() {
		if task.ID == id {
			return task.Title
		}
	}
	return id
}

func (m Model) dropStatus(id string) string {
	for _, task := range m.board.Tasks() {
		if task.ID != id {
			continue
		}
		col := domain.ColumnIndex(task.Status)
		if c, ok := domain.ColumnAt(col); ok {
			return fmt.Sprintf("%s in %s", task.Title, c.Label)
		}
	}
	return "ready"
}

// boardSummary lists each column's tasks as plain text.
func boardSummary(b *board.Board) string {
	var sb strings.Builder
	for _, col := range domain.Columns() {
		titles := make([]string, 0, 4)
		for _, task := range b.TasksIn(col.Key) {
			titles = append(titles, task.Title)
		}
		fmt.Fprintf(&sb, "%s: %s\n", col.Label, strings.Join(titles, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Dragging reports whether the board asked for selection suppression.
func (m Model) Dragging() bool {
	return m.selection.suppressed
}

// Board returns the hosted board.
func (m Model) Board() *board.Board {
	return m.board
}

// View renders the title, board and help footer.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// render returns the screen content as one string.
func (m Model) render() string {
	if !m.ready {
		return "loading..."
	}

	muted := lipgloss.Color("241")
	accent := lipgloss.Color("62")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	statusStyle := lipgloss.NewStyle().Foreground(muted)

	status := m.status
	if m.Dragging() {
		status = "dragging " + m.draggedTitle()
	}
	title := titleStyle.Render("kanvas") + "  " + statusStyle.Render(status)

	body := m.surface.Render()
	if m.showHelp {
		panel := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Render(m.markdown.render(helpMarkdown, max(0, m.width-6)))
		body = lipgloss.Place(m.width, max(m.height-chromeRows, 1), lipgloss.Center, lipgloss.Center, panel)
	}

	footer := lipgloss.NewStyle().Foreground(muted).Render(m.help.View(m.keys))
	return strings.Join([]string{title, body, footer}, "\n")
}
