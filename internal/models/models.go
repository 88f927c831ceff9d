package models

// ColumnRole names the capabilities of a column.
type ColumnRole string

const (
	RoleNone   ColumnRole = ""
	RoleSource ColumnRole = "source" // accepts new cards
	RoleSink   ColumnRole = "sink"   // allows deletion
)

// Seed column identifiers.
const (
	SourceColumnID = "column-a"
	SinkColumnID   = "column-b"
)

// Card is a single task item.
type Card struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Column is a named, ordered bucket of cards.
type Column struct {
	ColumnID string     `json:"columnId" yaml:"columnId"`
	Name     string     `json:"name" yaml:"name"`
	Role     ColumnRole `json:"role,omitempty" yaml:"role,omitempty"`
	Cards    []Card     `json:"cards" yaml:"cards"`
}

// Pointer is a pointer position in screen cells.
type Pointer struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DragSession is the transient state of a card being dragged.
//
// Active is true iff DraggingID and DraggingLabel are set.
type DragSession struct {
	Active        bool
	DraggingID    string
	DraggingLabel string
	Pointer       Pointer
}

// DefaultColumns returns the seed board used when no valid snapshot exists.
func DefaultColumns() []Column {
	return []Column{
		{
			Name:     "Upcoming",
			ColumnID: SourceColumnID,
			Role:     RoleSource,
			Cards: []Card{
				{ID: "a", Label: "Buy cat food"},
				{ID: "b", Label: "File taxes"},
			},
		},
		{
			Name:     "Finished",
			ColumnID: SinkColumnID,
			Role:     RoleSink,
			Cards: []Card{
				{ID: "c", Label: "Buy Amina's birthday present"},
				{ID: "d", Label: "Schedule haircut"},
			},
		},
	}
}

// CloneColumns returns a deep copy of columns. Card slices are never nil in the copy.
func CloneColumns(columns []Column) []Column {
	if columns == nil {
		return nil
	}
	out := make([]Column, len(columns))
	for i, col := range columns {
		out[i] = col
		out[i].Cards = append(make([]Card, 0, len(col.Cards)), col.Cards...)
	}
	return out
}

// AssignDefaultRoles fills in roles for snapshots written before columns carried one.
//
// Only applies when no column has a role; the seed ids get source and sink respectively.
func AssignDefaultRoles(columns []Column) {
	for _, col := range columns {
		if col.Role != RoleNone {
			return
		}
	}
	for i := range columns {
		switch columns[i].ColumnID {
		case SourceColumnID:
			columns[i].Role = RoleSource
		case SinkColumnID:
			columns[i].Role = RoleSink
		}
	}
}

// NormalizeColumns restores the unique-id invariants of a loaded board.
//
// Cards of a repeated column id are appended to the first column with that id, and any card whose id
// was already seen earlier on the board is dropped. The ids of dropped cards are returned in order.
// Card slices are never nil in the result.
func NormalizeColumns(columns []Column) ([]Column, []string) {
	out := make([]Column, 0, len(columns))
	byID := make(map[string]int, len(columns))
	seen := make(map[string]struct{})
	var dropped []string

	for _, col := range columns {
		i, ok := byID[col.ColumnID]
		if !ok {
			i = len(out)
			byID[col.ColumnID] = i
			head := col
			head.Cards = []Card{}
			out = append(out, head)
		}

		for _, card := range col.Cards {
			if _, dup := seen[card.ID]; dup {
				dropped = append(dropped, card.ID)
				continue
			}
			seen[card.ID] = struct{}{}
			out[i].Cards = append(out[i].Cards, card)
		}
	}

	return out, dropped
}

// CardIDs returns the count of every card id across all columns.
func CardIDs(columns []Column) map[string]int {
	ids := make(map[string]int)
	for _, col := range columns {
		for _, card := range col.Cards {
			ids[card.ID]++
		}
	}
	return ids
}

// CardCount returns the number of cards in the column.
func (c Column) CardCount() int {
	return len(c.Cards)
}

// IndexOf returns the position of the card with id, or -1.
func (c Column) IndexOf(id string) int {
	for i, card := range c.Cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}
