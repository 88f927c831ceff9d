package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/kanban/internal/models"
	"github.com/desertthunder/kanban/internal/shared"
	"github.com/desertthunder/kanban/internal/store"
)

// DefaultKey is the storage key snapshots are written under when none is configured.
const DefaultKey = "trello-columns"

// State is the drag lifecycle state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Options configures a [Manager]. Every field is optional.
type Options struct {
	Store   store.Store   // snapshot destination; nil disables persistence
	Key     string        // storage key, defaults to [DefaultKey]
	Logger  *log.Logger   // defaults to [shared.NewLogger] on stderr
	IDFunc  func() string // card id generator, defaults to [shared.GenerateID]
	Timeout time.Duration // per-save timeout, zero means none
}

// Result reports the effect of a dispatched event.
type Result struct {
	Changed   bool // the column list changed
	Persisted bool // the snapshot was written successfully
}

// Manager holds the board state. See the package documentation for the event model.
type Manager struct {
	columns []models.Column
	drag    models.DragSession
	input   string

	store   store.Store
	key     string
	logger  *log.Logger
	newID   func() string
	timeout time.Duration
	err     error
}

// New creates a Manager over a copy of columns. A nil column list starts from [models.DefaultColumns].
func New(columns []models.Column, opts Options) *Manager {
	if columns == nil {
		columns = models.DefaultColumns()
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.IDFunc == nil {
		opts.IDFunc = shared.GenerateID
	}

	columns, _ = models.NormalizeColumns(columns)

	return &Manager{
		columns: columns,
		store:   opts.Store,
		key:     opts.Key,
		logger:  shared.WithLogger(opts.Logger, "component", "board"),
		newID:   opts.IDFunc,
		timeout: opts.Timeout,
	}
}

// Load reads the snapshot under key, falling back to the seed board when it is absent or unparsable.
//
// Cards repeating an id seen earlier on the board are dropped with a warning; the rest of the board is kept.
func Load(ctx context.Context, s store.Store, key string, logger *log.Logger) []models.Column {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if s == nil {
		return models.DefaultColumns()
	}

	columns, err := store.LoadSnapshot(ctx, s, key)
	switch {
	case err == nil:
		columns, dropped := models.NormalizeColumns(columns)
		if len(dropped) > 0 {
			logger.Warn("dropped cards with duplicate ids from saved board", "key", key, "ids", dropped)
		}
		return columns
	case errors.Is(err, store.ErrNotFound):
		logger.Info("no saved board, using defaults", "key", key)
	case errors.Is(err, shared.ErrInvalidSnapshot):
		logger.Warn("saved board is invalid, using defaults", "key", key, "err", err)
	default:
		logger.Warn("failed to read saved board, using defaults", "key", key, "err", err)
	}
	return models.DefaultColumns()
}

// Open loads the board under opts.Key from opts.Store and returns a Manager over it.
func Open(ctx context.Context, opts Options) *Manager {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	return New(Load(ctx, opts.Store, key, opts.Logger), opts)
}

// Dispatch applies ev and persists the snapshot when the column list changed.
func (m *Manager) Dispatch(ctx context.Context, ev Event) Result {
	var changed bool

	switch e := ev.(type) {
	case AddCard:
		changed = m.addCard(e.Text)
	case DeleteCard:
		changed = m.deleteCard(e.CardID)
	case BeginDrag:
		m.beginDrag(e.CardID, e.Label, e.Pointer)
	case UpdatePointer:
		if m.drag.Active {
			m.drag.Pointer = e.Pointer
		}
	case EnterColumn:
		changed = m.enterColumn(e.ColumnID)
	case EndDrag:
		m.drag = models.DragSession{}
	case SetInput:
		m.input = e.Text
	}

	if !changed {
		return Result{}
	}

	m.logger.Debug("board changed", "event", ev.Kind())
	return Result{Changed: true, Persisted: m.persist(ctx)}
}

func (m *Manager) addCard(text string) bool {
	label := strings.TrimSpace(text)
	if label == "" {
		return false
	}

	i := m.indexOfRole(models.RoleSource)
	if i < 0 {
		return false
	}

	m.columns[i].Cards = append(m.columns[i].Cards, models.Card{ID: m.newID(), Label: label})
	m.input = ""
	return true
}

func (m *Manager) deleteCard(cardID string) bool {
	i := m.indexOfRole(models.RoleSink)
	if i < 0 {
		return false
	}

	j := m.columns[i].IndexOf(cardID)
	if j < 0 {
		return false
	}

	cards := m.columns[i].Cards
	m.columns[i].Cards = append(cards[:j:j], cards[j+1:]...)
	return true
}

func (m *Manager) beginDrag(cardID, label string, p models.Pointer) {
	if cardID == "" || label == "" {
		return
	}
	m.drag = models.DragSession{Active: true, DraggingID: cardID, DraggingLabel: label, Pointer: p}
}

// enterColumn moves the dragged card to the end of the target column.
//
// The card is removed and appended in one step; a card already in the target is left in place.
func (m *Manager) enterColumn(target string) bool {
	if !m.drag.Active {
		return false
	}

	to := m.indexOf(target)
	if to < 0 {
		return false
	}

	from, pos := m.locate(m.drag.DraggingID)
	if from < 0 || from == to {
		return false
	}

	card := m.columns[from].Cards[pos]
	src := m.columns[from].Cards
	m.columns[from].Cards = append(src[:pos:pos], src[pos+1:]...)
	m.columns[to].Cards = append(m.columns[to].Cards, card)
	return true
}

func (m *Manager) persist(ctx context.Context) bool {
	if m.store == nil {
		return false
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	if err := store.SaveSnapshot(ctx, m.store, m.key, m.columns); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", shared.ErrTimeout, m.timeout, err)
		}
		m.err = err
		m.logger.Warn("failed to persist board", "key", m.key, "err", err)
		return false
	}

	m.err = nil
	return true
}

// Replace swaps the whole column list, clears the drag session, and persists the result.
func (m *Manager) Replace(ctx context.Context, columns []models.Column) Result {
	m.columns, _ = models.NormalizeColumns(columns)
	m.drag = models.DragSession{}
	return Result{Changed: true, Persisted: m.persist(ctx)}
}

func (m *Manager) AddCard(ctx context.Context, text string) Result {
	return m.Dispatch(ctx, AddCard{Text: text})
}

func (m *Manager) DeleteCard(ctx context.Context, cardID string) Result {
	return m.Dispatch(ctx, DeleteCard{CardID: cardID})
}

func (m *Manager) BeginDrag(ctx context.Context, cardID, label string, p models.Pointer) Result {
	return m.Dispatch(ctx, BeginDrag{CardID: cardID, Label: label, Pointer: p})
}

func (m *Manager) UpdatePointer(ctx context.Context, p models.Pointer) Result {
	return m.Dispatch(ctx, UpdatePointer{Pointer: p})
}

func (m *Manager) EnterColumn(ctx context.Context, columnID string) Result {
	return m.Dispatch(ctx, EnterColumn{ColumnID: columnID})
}

func (m *Manager) EndDrag(ctx context.Context) Result {
	return m.Dispatch(ctx, EndDrag{})
}

func (m *Manager) SetInput(ctx context.Context, text string) Result {
	return m.Dispatch(ctx, SetInput{Text: text})
}

// Columns returns a copy of the column list.
func (m *Manager) Columns() []models.Column {
	return models.CloneColumns(m.columns)
}

// Column returns a copy of the column with id.
func (m *Manager) Column(id string) (models.Column, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return models.Column{}, false
	}
	return models.CloneColumns(m.columns[i : i+1])[0], true
}

// Locate returns the id of the column holding cardID.
func (m *Manager) Locate(cardID string) (string, bool) {
	i, _ := m.locate(cardID)
	if i < 0 {
		return "", false
	}
	return m.columns[i].ColumnID, true
}

// Card returns the card with id from any column.
func (m *Manager) Card(id string) (models.Card, bool) {
	i, j := m.locate(id)
	if i < 0 {
		return models.Card{}, false
	}
	return m.columns[i].Cards[j], true
}

func (m *Manager) Drag() models.DragSession { return m.drag }
func (m *Manager) Input() string            { return m.input }
func (m *Manager) Key() string              { return m.key }

// Err returns the most recent persistence failure, cleared by the next successful save.
func (m *Manager) Err() error { return m.err }

func (m *Manager) State() State {
	if m.drag.Active {
		return Dragging
	}
	return Idle
}

// SourceColumnID returns the id of the column new cards go to, or "".
func (m *Manager) SourceColumnID() string {
	if i := m.indexOfRole(models.RoleSource); i >= 0 {
		return m.columns[i].ColumnID
	}
	return ""
}

// SinkColumnID returns the id of the column cards can be deleted from, or "".
func (m *Manager) SinkColumnID() string {
	if i := m.indexOfRole(models.RoleSink); i >= 0 {
		return m.columns[i].ColumnID
	}
	return ""
}

func (m *Manager) indexOf(columnID string) int {
	for i, col := range m.columns {
		if col.ColumnID == columnID {
			return i
		}
	}
	return -1
}

func (m *Manager) indexOfRole(role models.ColumnRole) int {
	for i, col := range m.columns {
		if col.Role == role {
			return i
		}
	}
	return -1
}

func (m *Manager) locate(cardID string) (int, int) {
	for i, col := range m.columns {
		if j := col.IndexOf(cardID); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}
