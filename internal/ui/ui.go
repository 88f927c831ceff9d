package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/kanban/internal/board"
	"github.com/desertthunder/kanban/internal/models"
	"github.com/desertthunder/kanban/internal/shared"
	"golang.org/x/time/rate"
)

// Model is the TUI application state. The board itself lives in the [board.Manager];
// the model only adds presentation state (focus, hover, pending clicks, window size).
type Model struct {
	ctx    context.Context
	board  *board.Manager
	logger *log.Logger

	input textinput.Model
	help  help.Model
	keys  keyMap

	width  int
	height int

	hover   string // column the pointer was last over while dragging
	pending hit    // press target completed by a release on the same element

	trace rate.Sometimes
}

// NewModel creates a TUI model over mgr.
func NewModel(ctx context.Context, mgr *board.Manager, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	ti := textinput.New()
	ti.Placeholder = "New task..."
	ti.CharLimit = 120
	ti.Prompt = ""
	ti.SetValue(mgr.Input())

	return &Model{
		ctx:    ctx,
		board:  mgr,
		logger: shared.WithLogger(logger, "component", "ui"),
		input:  ti,
		help:   help.New(),
		keys:   newKeyMap(),
		width:  defaultWidth,
		trace:  rate.Sometimes{Interval: 250 * time.Millisecond},
	}
}

// Init focuses the new-card input.
func (m *Model) Init() tea.Cmd {
	return m.input.Focus()
}

// Update handles incoming messages and dispatches board events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// View renders the board, the drag ghost, and the help line.
func (m *Model) View() string {
	c := m.draw()

	var footer []string
	if err := m.board.Err(); err != nil {
		footer = append(footer, styles.err.Render(fmt.Sprintf("Not saved: %v", err)))
	}
	footer = append(footer, m.help.View(m.keys))

	return c.render(styles) + "\n\n" + strings.Join(footer, "\n")
}

func (m *Model) layout() layout {
	return newLayout(m.board.Columns(), m.board.SourceColumnID(), m.board.SinkColumnID(), m.width)
}

func (m *Model) pointer(msg tea.MouseMsg) models.Pointer {
	return models.Pointer{X: msg.X, Y: msg.Y}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	l := m.layout()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.press(l, msg)

	case tea.MouseActionMotion:
		m.motion(l, msg)
		return nil

	case tea.MouseActionRelease:
		return m.release(l, msg)
	}

	return nil
}

func (m *Model) press(l layout, msg tea.MouseMsg) tea.Cmd {
	h := l.hitTest(msg.X, msg.Y)

	switch h.kind {
	case hitCard:
		m.board.BeginDrag(m.ctx, h.card.ID, h.card.Label, m.pointer(msg))
		m.hover = h.columnID
		m.logger.Debug("drag started", "card", h.card.ID, "column", h.columnID)
	case hitDelete, hitAdd:
		m.pending = h
	case hitInput:
		return m.input.Focus()
	}

	return nil
}

func (m *Model) motion(l layout, msg tea.MouseMsg) {
	if m.board.State() != board.Dragging {
		return
	}

	p := m.pointer(msg)
	m.board.UpdatePointer(m.ctx, p)
	m.trace.Do(func() {
		m.logger.Debug("pointer", "x", p.X, "y", p.Y)
	})

	box, ok := l.columnAt(msg.X, msg.Y)
	if !ok {
		m.hover = ""
		return
	}

	if box.column.ColumnID == m.hover {
		return
	}
	m.hover = box.column.ColumnID

	if res := m.board.EnterColumn(m.ctx, box.column.ColumnID); res.Changed {
		m.logger.Debug("card moved", "card", m.board.Drag().DraggingID, "column", box.column.ColumnID)
	}
}

func (m *Model) release(l layout, msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd

	if m.pending.kind != hitNone {
		h := l.hitTest(msg.X, msg.Y)
		if h.kind == m.pending.kind && h.columnID == m.pending.columnID && h.card.ID == m.pending.card.ID {
			cmd = m.click(h)
		}
	}

	m.board.EndDrag(m.ctx)
	m.hover = ""
	m.pending = hit{}
	return cmd
}

func (m *Model) click(h hit) tea.Cmd {
	switch h.kind {
	case hitDelete:
		m.board.DeleteCard(m.ctx, h.card.ID)
	case hitAdd:
		m.addCard()
		return m.input.Focus()
	}
	return nil
}

func (m *Model) addCard() {
	if res := m.board.AddCard(m.ctx, m.input.Value()); res.Changed {
		m.input.SetValue(m.board.Input())
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.exit) {
		return m, tea.Quit
	}

	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.add):
			m.addCard()
			return m, nil
		case key.Matches(msg, m.keys.blur):
			m.input.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.board.Input() {
			m.board.SetInput(m.ctx, m.input.Value())
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.focus):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.add):
		m.addCard()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// draw lays the board out on a canvas, ghost last so it floats above everything else.
func (m *Model) draw() *canvas {
	l := m.layout()
	drag := m.board.Drag()

	width := l.width
	if m.width > width {
		width = m.width
	}
	c := newCanvas(width, l.height)

	c.write(marginX, titleRow, fmt.Sprintf("Board · %s", m.board.Key()), clsTitle)

	for _, box := range l.columns {
		m.drawColumn(c, box, drag)
	}

	if drag.Active {
		y := drag.Pointer.Y + ghostDY
		if m.height > 0 && y >= m.height {
			y = m.height - 1
		}
		c.grow(y + 1)
		c.write(drag.Pointer.X+ghostDX, y, " "+drag.DraggingLabel+" ", clsGhost)
	}

	return c
}

func (m *Model) drawColumn(c *canvas, box columnBox, drag models.DragSession) {
	header := fmt.Sprintf("%s (%d)", box.column.Name, len(box.column.Cards))
	c.write(box.x, headerRow, fit(header, box.width), clsHeader)
	c.write(box.x, ruleRow, strings.Repeat("─", box.width), clsRule)

	for _, cb := range box.cards {
		cls := clsCard
		switch {
		case drag.Active && cb.card.ID == drag.DraggingID:
			cls = clsDragging
		case box.sink:
			cls = clsFinished
		}

		labelWidth := box.width - 1
		if cb.deletable {
			labelWidth -= deleteWidth
		}
		x := c.write(box.x, cb.row, " "+fit(cb.card.Label, labelWidth), cls)
		if cb.deletable {
			c.write(x, cb.row, " ✕ ", clsDelete)
		}
	}

	if box.source {
		text := m.input.Value()
		cls := clsInput
		if text == "" && !m.input.Focused() {
			text = m.input.Placeholder
			cls = clsMuted
		}
		if m.input.Focused() {
			text = insertCursor(text, m.input.Position())
		}
		c.write(box.x, box.inputRow, "> "+fit(text, box.width-2), cls)
		c.write(box.x, box.addRow, addButtonText, clsButton)
	}
}

// insertCursor places a block cursor before the rune at pos.
func insertCursor(s string, pos int) string {
	r := []rune(s)
	if pos < 0 {
		pos = 0
	}
	if pos > len(r) {
		pos = len(r)
	}
	return string(r[:pos]) + "█" + string(r[pos:])
}
