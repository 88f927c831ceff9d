package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/kanban/internal/board"
	"github.com/desertthunder/kanban/internal/models"
	"github.com/desertthunder/kanban/internal/shared"
	"github.com/desertthunder/kanban/internal/store"
	tu "github.com/desertthunder/kanban/internal/testing"
)

// With the seed board at width 80 each column is 38 cells wide:
// column-a spans x 1..38, column-b spans x 41..78. Cards start on row 4,
// the input sits on row 7 and the add button on row 8.
const (
	colAX   = 5
	colBX   = 50
	deleteX = 77
)

func newTestModel(t *testing.T) (*Model, *board.Manager, *store.MemoryStore) {
	t.Helper()
	logger := shared.NewLogger(&bytes.Buffer{})
	s := store.NewMemoryStore()
	mgr := board.New(nil, board.Options{Store: s, Logger: logger, IDFunc: tu.Counter()})
	m := NewModel(context.Background(), mgr, logger)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, mgr, s
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestLayout(t *testing.T) {
	cols := models.DefaultColumns()
	l := newLayout(cols, models.SourceColumnID, models.SinkColumnID, 80)

	t.Run("geometry", func(t *testing.T) {
		if l.columns[0].x != 1 || l.columns[0].width != 38 {
			t.Errorf("column a at x=%d w=%d", l.columns[0].x, l.columns[0].width)
		}
		if l.columns[1].x != 41 {
			t.Errorf("column b at x=%d", l.columns[1].x)
		}
		if l.columns[0].inputRow != 7 || l.columns[0].addRow != 8 {
			t.Errorf("input row %d, add row %d", l.columns[0].inputRow, l.columns[0].addRow)
		}
		if l.columns[1].inputRow != -1 {
			t.Error("sink column should have no input")
		}
		if l.height != 9 {
			t.Errorf("height = %d, want 9", l.height)
		}
	})

	tt := []struct {
		name   string
		x, y   int
		kind   hitKind
		column string
		card   string
	}{
		{name: "title row", x: colAX, y: 0, kind: hitNone},
		{name: "gap between columns", x: 39, y: 4, kind: hitNone},
		{name: "header", x: colAX, y: headerRow, kind: hitColumn, column: "column-a"},
		{name: "first source card", x: colAX, y: 4, kind: hitCard, column: "column-a", card: "a"},
		{name: "second source card far right", x: 38, y: 5, kind: hitCard, column: "column-a", card: "b"},
		{name: "sink card label", x: colBX, y: 4, kind: hitCard, column: "column-b", card: "c"},
		{name: "sink delete", x: deleteX, y: 5, kind: hitDelete, column: "column-b", card: "d"},
		{name: "input", x: colAX, y: 7, kind: hitInput, column: "column-a"},
		{name: "add button", x: 2, y: 8, kind: hitAdd, column: "column-a"},
		{name: "right of add button", x: 30, y: 8, kind: hitColumn, column: "column-a"},
		{name: "below sink cards", x: colBX, y: 15, kind: hitColumn, column: "column-b"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			h := l.hitTest(tc.x, tc.y)
			if h.kind != tc.kind {
				t.Errorf("kind = %v, want %v", h.kind, tc.kind)
			}
			if h.columnID != tc.column {
				t.Errorf("column = %q, want %q", h.columnID, tc.column)
			}
			if h.card.ID != tc.card {
				t.Errorf("card = %q, want %q", h.card.ID, tc.card)
			}
		})
	}

	t.Run("narrow screens clamp column width", func(t *testing.T) {
		if w := columnWidth(2, 20); w != minColWidth {
			t.Errorf("columnWidth() = %d, want %d", w, minColWidth)
		}
		if w := columnWidth(2, 400); w != maxColWidth {
			t.Errorf("columnWidth() = %d, want %d", w, maxColWidth)
		}
		if w := columnWidth(2, 0); w != 38 {
			t.Errorf("columnWidth() with unknown width = %d, want 38", w)
		}
	})
}

func TestMouseDrag(t *testing.T) {
	t.Run("drag card to sink", func(t *testing.T) {
		m, mgr, s := newTestModel(t)

		m.Update(press(colAX, 4))
		if mgr.State() != board.Dragging || mgr.Drag().DraggingID != "a" {
			t.Fatalf("expected drag of a, got %+v", mgr.Drag())
		}

		m.Update(motion(colAX+3, 4))
		if loc, _ := mgr.Locate("a"); loc != models.SourceColumnID {
			t.Error("card should not move while still over its own column")
		}
		if mgr.Drag().Pointer != (models.Pointer{X: colAX + 3, Y: 4}) {
			t.Errorf("pointer = %+v", mgr.Drag().Pointer)
		}

		m.Update(motion(colBX, 6))
		m.Update(motion(colBX+1, 6))
		m.Update(motion(colBX+2, 7))

		if loc, _ := mgr.Locate("a"); loc != models.SinkColumnID {
			t.Errorf("card a in %s, want %s", loc, models.SinkColumnID)
		}
		if got := models.CardIDs(mgr.Columns())["a"]; got != 1 {
			t.Errorf("card a appears %d times", got)
		}
		if s.Puts() != 1 {
			t.Errorf("expected exactly one save for one hover transition, got %d", s.Puts())
		}

		m.Update(release(colBX+2, 7))
		if mgr.State() != board.Idle {
			t.Error("release should end the drag")
		}
	})

	t.Run("crossing the gap and back", func(t *testing.T) {
		m, mgr, _ := newTestModel(t)

		m.Update(press(colAX, 5))
		m.Update(motion(colBX, 5))
		m.Update(motion(39, 5))
		m.Update(motion(colAX, 5))
		m.Update(release(colAX, 5))

		col, _ := mgr.Column(models.SourceColumnID)
		if col.Cards[len(col.Cards)-1].ID != "b" {
			t.Errorf("expected b back at the end of the source column, got %+v", col.Cards)
		}
	})

	t.Run("pointer trace logging is throttled", func(t *testing.T) {
		var logs bytes.Buffer
		logger := shared.NewLogger(&logs)
		logger.SetLevel(log.DebugLevel)
		mgr := board.New(nil, board.Options{Store: store.NewMemoryStore(), Logger: logger})
		m := NewModel(context.Background(), mgr, logger)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

		m.Update(press(colAX, 4))
		for x := colAX; x < colAX+20; x++ {
			m.Update(motion(x, 4))
		}

		if n := strings.Count(logs.String(), " pointer "); n != 1 {
			t.Errorf("expected one pointer trace line, got %d", n)
		}
		if mgr.Drag().Pointer.X != colAX+19 {
			t.Errorf("every motion should still reach the board, pointer = %+v", mgr.Drag().Pointer)
		}
	})

	t.Run("motion without a drag is ignored", func(t *testing.T) {
		m, mgr, s := newTestModel(t)
		m.Update(motion(colBX, 4))

		if mgr.State() != board.Idle || s.Puts() != 0 {
			t.Error("stray motion should not change anything")
		}
	})

	t.Run("right click does not start a drag", func(t *testing.T) {
		m, mgr, _ := newTestModel(t)
		m.Update(tea.MouseMsg{X: colAX, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})

		if mgr.State() != board.Idle {
			t.Error("expected idle")
		}
	})

	t.Run("ghost follows pointer", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.Update(press(colAX, 4))
		m.Update(motion(10, 12))

		lines := strings.Split(m.draw().plain(), "\n")
		if len(lines) <= 12+ghostDY {
			t.Fatalf("canvas too short: %d lines", len(lines))
		}
		row := lines[12+ghostDY]
		if !strings.Contains(row, "Buy cat food") {
			t.Errorf("ghost label missing from row %d: %q", 12+ghostDY, row)
		}
		if idx := strings.Index(row, "Buy cat food"); idx != 10+ghostDX+1 {
			t.Errorf("ghost label at column %d, want %d", idx, 10+ghostDX+1)
		}

		m.Update(release(10, 12))
		if n := strings.Count(m.draw().plain(), "Buy cat food"); n != 1 {
			t.Errorf("expected only the card itself after release, found label %d times", n)
		}
	})
}

func TestMouseClicks(t *testing.T) {
	t.Run("delete affordance", func(t *testing.T) {
		m, mgr, _ := newTestModel(t)

		m.Update(press(deleteX, 4))
		m.Update(release(deleteX, 4))

		if _, ok := mgr.Locate("c"); ok {
			t.Error("card c should be deleted")
		}
	})

	t.Run("release elsewhere cancels the click", func(t *testing.T) {
		m, mgr, _ := newTestModel(t)

		m.Update(press(deleteX, 4))
		m.Update(release(deleteX, 5))

		if _, ok := mgr.Locate("c"); !ok {
			t.Error("card c should survive")
		}
		if _, ok := mgr.Locate("d"); !ok {
			t.Error("card d should survive")
		}
	})

	t.Run("add button", func(t *testing.T) {
		m, mgr, _ := newTestModel(t)
		typeText(m, "Buy milk")

		m.Update(press(2, 8))
		m.Update(release(2, 8))

		col, _ := mgr.Column(models.SourceColumnID)
		if last := col.Cards[len(col.Cards)-1]; last.Label != "Buy milk" {
			t.Errorf("last card = %+v", last)
		}
		if m.input.Value() != "" {
			t.Errorf("input should be cleared, got %q", m.input.Value())
		}
	})

	t.Run("click on input focuses it", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.input.Blur()

		m.Update(press(colAX, 7))
		if !m.input.Focused() {
			t.Error("expected focused input")
		}
	})
}

func TestKeys(t *testing.T) {
	t.Run("enter adds trimmed card", func(t *testing.T) {
		m, mgr, s := newTestModel(t)
		typeText(m, "  Water plants ")
		if mgr.Input() != "  Water plants " {
			t.Errorf("board input buffer = %q", mgr.Input())
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		col, _ := mgr.Column(models.SourceColumnID)
		if last := col.Cards[len(col.Cards)-1]; last.Label != "Water plants" || last.ID != "card-1" {
			t.Errorf("last card = %+v", last)
		}
		if mgr.Input() != "" || m.input.Value() != "" {
			t.Error("input should be cleared after adding")
		}
		if s.Puts() != 1 {
			t.Errorf("expected 1 save, got %d", s.Puts())
		}
	})

	t.Run("enter on whitespace is ignored", func(t *testing.T) {
		m, mgr, s := newTestModel(t)
		typeText(m, "   ")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		col, _ := mgr.Column(models.SourceColumnID)
		if col.CardCount() != 2 || s.Puts() != 0 {
			t.Error("whitespace should not add a card")
		}
	})

	t.Run("q types while focused and quits when blurred", func(t *testing.T) {
		m, _, _ := newTestModel(t)

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if m.input.Value() != "q" {
			t.Errorf("expected q in the input, got %q", m.input.Value())
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.input.Focused() {
			t.Fatal("esc should blur the input")
		}

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})

	t.Run("help toggle", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.input.Blur()
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
		if !m.help.ShowAll {
			t.Error("expected full help")
		}
	})
}

func TestView(t *testing.T) {
	t.Run("board contents", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		out := m.draw().plain()

		for _, want := range []string{"Board · trello-columns", "Upcoming (2)", "Finished (2)", "Buy cat food", "Schedule haircut", "[+ Add]", "✕"} {
			if !strings.Contains(out, want) {
				t.Errorf("view missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("delete affordance only in sink rows", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		lines := strings.Split(m.draw().plain(), "\n")

		for _, line := range lines {
			if strings.Contains(line, "✕") && !strings.Contains(line, "Buy Amina") && !strings.Contains(line, "Schedule haircut") {
				t.Errorf("unexpected delete affordance on line %q", line)
			}
		}
		if strings.Count(strings.Join(lines, "\n"), "✕") != 2 {
			t.Error("expected one delete affordance per sink card")
		}
	})

	t.Run("placeholder when blurred and empty", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.input.Blur()
		if !strings.Contains(m.draw().plain(), "New task...") {
			t.Error("expected placeholder")
		}
	})

	t.Run("persistence error in footer", func(t *testing.T) {
		logger := shared.NewLogger(&bytes.Buffer{})
		mgr := board.New(nil, board.Options{Store: &tu.FailingStore{}, Logger: logger})
		m := NewModel(context.Background(), mgr, logger)
		m.Init()
		typeText(m, "x")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		if !strings.Contains(m.View(), "Not saved") {
			t.Error("expected persistence error in view")
		}
	})

	t.Run("long labels are truncated to the column", func(t *testing.T) {
		m, mgr, _ := newTestModel(t)
		mgr.AddCard(context.Background(), strings.Repeat("long ", 30))

		for _, line := range strings.Split(m.draw().plain(), "\n") {
			if strings.Contains(line, "long") && !strings.Contains(line, "…") {
				t.Errorf("expected truncated label, got %q", line)
			}
		}
	})
}

func TestCanvas(t *testing.T) {
	t.Run("clips writes", func(t *testing.T) {
		c := newCanvas(5, 1)
		c.write(3, 0, "abcdef", clsPlain)
		c.write(0, 5, "zzz", clsPlain)
		if got := c.plain(); got != "   ab" {
			t.Errorf("plain() = %q", got)
		}
	})

	t.Run("wide runes", func(t *testing.T) {
		c := newCanvas(6, 1)
		c.write(0, 0, "日本", clsPlain)
		if got := c.plain(); got != "日本" {
			t.Errorf("plain() = %q", got)
		}

		c.write(1, 0, "x", clsPlain)
		if got := c.plain(); got != " x本" {
			t.Errorf("overwriting half a wide rune: plain() = %q", got)
		}
	})

	t.Run("grow", func(t *testing.T) {
		c := newCanvas(3, 1)
		c.grow(3)
		c.write(0, 2, "ok", clsPlain)
		if got := c.plain(); got != "\n\nok" {
			t.Errorf("plain() = %q", got)
		}
	})

	t.Run("fit", func(t *testing.T) {
		if got := fit("hello", 8); got != "hello   " {
			t.Errorf("fit() = %q", got)
		}
		if got := fit("hello world", 6); got != "hello…" {
			t.Errorf("fit() = %q", got)
		}
		if got := fit("x", 0); got != "" {
			t.Errorf("fit() = %q", got)
		}
	})

	t.Run("insertCursor", func(t *testing.T) {
		if got := insertCursor("abc", 1); got != "a█bc" {
			t.Errorf("insertCursor() = %q", got)
		}
		if got := insertCursor("abc", 10); got != "abc█" {
			t.Errorf("insertCursor() = %q", got)
		}
	})
}
