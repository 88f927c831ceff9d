// Package ui implements the interactive board using bubbletea's Elm architecture.
//
// The screen is computed from a [layout]: column strips laid out left to right, one row per card,
// and the new-card input plus add button under the source column. The same layout drives rendering
// and mouse hit-testing, so what is drawn is exactly what can be clicked.
//
// Mouse events map onto board events:
//   - press on a card: BeginDrag
//   - motion while pressed: UpdatePointer, and EnterColumn when the pointer crosses into another column
//   - release anywhere: EndDrag (and completes a click on ✕ or [+ Add])
//
// Typing edits the input buffer; enter adds the card. A ghost copy of the dragged label follows the pointer.
package ui
