package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	header   lipgloss.Style
	card     lipgloss.Style
	dragging lipgloss.Style
	finished lipgloss.Style
	remove   lipgloss.Style
	input    lipgloss.Style
	button   lipgloss.Style
	ghost    lipgloss.Style
	err      lipgloss.Style
	muted    lipgloss.Style
}

// NewPalette builds the board styles from accent, success, error, warning, and muted colors.
func NewPalette(accent, ok, e, w, muted string) *Palette {
	return &Palette{
		title:    NewBold(accent),
		header:   NewBold(accent).Underline(true),
		card:     lipgloss.NewStyle(),
		dragging: NewStyle(w).Reverse(true),
		finished: NewStyle(ok).Strikethrough(true),
		remove:   NewBold(e),
		input:    NewStyle(accent),
		button:   NewBold(ok),
		ghost:    NewBold("#FFFFFF").Background(lipgloss.Color(accent)),
		err:      NewBold(e),
		muted:    NewEm(muted),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// style returns the style for a cell class.
func (p *Palette) style(c class) (lipgloss.Style, bool) {
	switch c {
	case clsTitle:
		return p.title, true
	case clsHeader:
		return p.header, true
	case clsCard:
		return p.card, true
	case clsDragging:
		return p.dragging, true
	case clsFinished:
		return p.finished, true
	case clsDelete:
		return p.remove, true
	case clsInput:
		return p.input, true
	case clsButton:
		return p.button, true
	case clsGhost:
		return p.ghost, true
	case clsMuted, clsRule:
		return p.muted, true
	default:
		return lipgloss.Style{}, false
	}
}
