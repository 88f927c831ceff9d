package board

import "github.com/desertthunder/kanban/internal/models"

// EventKind enumerates the event variants accepted by [Manager.Dispatch].
type EventKind int

const (
	KindAddCard EventKind = iota
	KindDeleteCard
	KindBeginDrag
	KindUpdatePointer
	KindEnterColumn
	KindEndDrag
	KindSetInput
)

func (k EventKind) String() string {
	switch k {
	case KindAddCard:
		return "add_card"
	case KindDeleteCard:
		return "delete_card"
	case KindBeginDrag:
		return "begin_drag"
	case KindUpdatePointer:
		return "update_pointer"
	case KindEnterColumn:
		return "enter_column"
	case KindEndDrag:
		return "end_drag"
	case KindSetInput:
		return "set_input"
	default:
		return "unknown"
	}
}

// Event is a board input. The set of implementations is closed.
type Event interface {
	Kind() EventKind
	event()
}

// AddCard appends a card labelled with the trimmed Text to the source column.
type AddCard struct{ Text string }

// DeleteCard removes CardID from the sink column.
type DeleteCard struct{ CardID string }

// BeginDrag starts dragging CardID.
type BeginDrag struct {
	CardID  string
	Label   string
	Pointer models.Pointer
}

// UpdatePointer moves the drag pointer.
type UpdatePointer struct{ Pointer models.Pointer }

// EnterColumn moves the dragged card into ColumnID.
type EnterColumn struct{ ColumnID string }

// EndDrag clears the drag session.
type EndDrag struct{}

// SetInput replaces the new-card input buffer.
type SetInput struct{ Text string }

var (
	_ Event = AddCard{}
	_ Event = DeleteCard{}
	_ Event = BeginDrag{}
	_ Event = UpdatePointer{}
	_ Event = EnterColumn{}
	_ Event = EndDrag{}
	_ Event = SetInput{}
)

func (AddCard) Kind() EventKind       { return KindAddCard }
func (DeleteCard) Kind() EventKind    { return KindDeleteCard }
func (BeginDrag) Kind() EventKind     { return KindBeginDrag }
func (UpdatePointer) Kind() EventKind { return KindUpdatePointer }
func (EnterColumn) Kind() EventKind   { return KindEnterColumn }
func (EndDrag) Kind() EventKind       { return KindEndDrag }
func (SetInput) Kind() EventKind      { return KindSetInput }

func (AddCard) event()       {}
func (DeleteCard) event()    {}
func (BeginDrag) event()     {}
func (UpdatePointer) event() {}
func (EnterColumn) event()   {}
func (EndDrag) event()       {}
func (SetInput) event()      {}
