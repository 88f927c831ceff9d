// Package models defines the board data model.
//
// A board is an ordered list of [Column] values, each holding an ordered list of [Card] values.
// Columns carry a [ColumnRole]: the [RoleSource] column accepts new cards and the [RoleSink] column allows deletion.
//
// [DragSession] tracks an in-progress card relocation and is never persisted.
// The persisted snapshot is the JSON encoding of []Column, field names matching the format written by earlier
// versions of the board (columnId, name, cards).
package models
