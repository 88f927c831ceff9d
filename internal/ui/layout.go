package ui

import (
	"github.com/desertthunder/kanban/internal/models"
)

// Screen geometry, in cells.
const (
	marginX      = 1
	gapX         = 2
	titleRow     = 0
	headerRow    = 2
	ruleRow      = 3
	firstCardRow = 4
	minColWidth  = 18
	maxColWidth  = 40
	defaultWidth = 80
	deleteWidth  = 3 // " ✕ "

	// ghost label offset from the pointer
	ghostDX = 2
	ghostDY = 1
)

const addButtonText = "[+ Add]"

type hitKind int

const (
	hitNone hitKind = iota
	hitColumn
	hitCard
	hitDelete
	hitInput
	hitAdd
)

// hit is the result of a hit-test.
type hit struct {
	kind     hitKind
	columnID string
	card     models.Card
}

// cardBox is one card row.
type cardBox struct {
	card      models.Card
	row       int
	deletable bool
}

// columnBox is one column strip.
type columnBox struct {
	column   models.Column
	x        int
	width    int
	cards    []cardBox
	source   bool
	sink     bool
	inputRow int // -1 unless source
	addRow   int // -1 unless source
	bottom   int // first row below the column content
}

// layout places every column and card on screen.
type layout struct {
	columns []columnBox
	width   int
	height  int
}

func columnWidth(n, width int) int {
	if n <= 0 {
		return minColWidth
	}
	if width <= 0 {
		width = defaultWidth
	}
	w := (width - 2*marginX - gapX*(n-1)) / n
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}

// newLayout computes positions for columns on a screen width cells wide.
func newLayout(columns []models.Column, sourceID, sinkID string, width int) layout {
	l := layout{columns: make([]columnBox, len(columns))}
	w := columnWidth(len(columns), width)

	for i, col := range columns {
		box := columnBox{
			column:   col,
			x:        marginX + i*(w+gapX),
			width:    w,
			source:   col.ColumnID == sourceID,
			sink:     col.ColumnID == sinkID,
			inputRow: -1,
			addRow:   -1,
		}

		row := firstCardRow
		for _, card := range col.Cards {
			box.cards = append(box.cards, cardBox{card: card, row: row, deletable: box.sink})
			row++
		}

		if box.source {
			box.inputRow = row + 1
			box.addRow = row + 2
			row += 3
		}
		box.bottom = row

		l.columns[i] = box
		if row > l.height {
			l.height = row
		}
		if end := box.x + box.width + marginX; end > l.width {
			l.width = end
		}
	}

	if l.height < firstCardRow {
		l.height = firstCardRow
	}
	return l
}

// columnAt returns the column whose strip contains x, at or below the header row.
func (l layout) columnAt(x, y int) (columnBox, bool) {
	if y < headerRow {
		return columnBox{}, false
	}
	for _, box := range l.columns {
		if x >= box.x && x < box.x+box.width {
			return box, true
		}
	}
	return columnBox{}, false
}

// hitTest resolves the element under the cell (x, y).
func (l layout) hitTest(x, y int) hit {
	box, ok := l.columnAt(x, y)
	if !ok {
		return hit{}
	}

	h := hit{kind: hitColumn, columnID: box.column.ColumnID}

	for _, cb := range box.cards {
		if cb.row != y {
			continue
		}
		h.card = cb.card
		if cb.deletable && x >= box.x+box.width-deleteWidth {
			h.kind = hitDelete
		} else {
			h.kind = hitCard
		}
		return h
	}

	switch y {
	case box.inputRow:
		h.kind = hitInput
	case box.addRow:
		if x < box.x+len(addButtonText) {
			h.kind = hitAdd
		}
	}

	return h
}
