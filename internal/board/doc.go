// Package board implements the board state manager.
//
// A [Manager] owns the column list, the drag session, and the new-card input buffer.
// All state changes go through [Manager.Dispatch], which accepts one of the [Event] variants:
//
//   - [AddCard] : append a card to the source column
//   - [DeleteCard] : remove a card from the sink column
//   - [BeginDrag] : start (or replace) the drag session
//   - [UpdatePointer] : move the drag pointer
//   - [EnterColumn] : transfer the dragged card into the hovered column
//   - [EndDrag] : clear the drag session
//   - [SetInput] : replace the new-card input buffer
//
// Invalid input never fails: it degrades to a no-op. When an event changes the column list the full snapshot
// is written to the configured [store.Store]; write failures are logged and kept for [Manager.Err] but never
// surface as dispatch errors.
//
// A Manager is not safe for concurrent use. It is meant to be owned by a single event loop.
package board
