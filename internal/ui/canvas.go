package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// class tags a cell with the style it is rendered in.
type class int

const (
	clsPlain class = iota
	clsTitle
	clsHeader
	clsRule
	clsCard
	clsDragging
	clsFinished
	clsDelete
	clsInput
	clsButton
	clsGhost
	clsMuted
)

type cell struct {
	r    rune
	cls  class
	wide bool // second half of a double-width rune
}

// canvas is a fixed grid of styled cells. Later writes overwrite earlier ones.
type canvas struct {
	width int
	rows  [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, rows: make([][]cell, height)}
	for i := range c.rows {
		c.rows[i] = blankRow(width)
	}
	return c
}

func blankRow(width int) []cell {
	row := make([]cell, width)
	for i := range row {
		row[i] = cell{r: ' '}
	}
	return row
}

// grow adds blank rows until the canvas has at least height rows.
func (c *canvas) grow(height int) {
	for len(c.rows) < height {
		c.rows = append(c.rows, blankRow(c.width))
	}
}

// write draws s starting at (x, y), clipped to the canvas, and returns the x after the last cell written.
func (c *canvas) write(x, y int, s string, cls class) int {
	if y < 0 || y >= len(c.rows) {
		return x
	}
	row := c.rows[y]
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x < 0 {
			x += w
			continue
		}
		if x+w > c.width {
			break
		}
		c.split(row, x, w)
		row[x] = cell{r: r, cls: cls}
		if w == 2 {
			row[x+1] = cell{cls: cls, wide: true}
		}
		x += w
	}
	return x
}

// split blanks any double-width rune partially covered by a write of w cells at x.
func (c *canvas) split(row []cell, x, w int) {
	if row[x].wide && x > 0 {
		row[x-1] = cell{r: ' ', cls: row[x-1].cls}
	}
	if end := x + w; end < len(row) && row[end].wide {
		row[end] = cell{r: ' ', cls: row[end].cls}
	}
}

// plain returns the canvas text without styling, trailing spaces trimmed.
func (c *canvas) plain() string {
	lines := make([]string, len(c.rows))
	for i, row := range c.rows {
		var b strings.Builder
		for _, cl := range row {
			if !cl.wide {
				b.WriteRune(cl.r)
			}
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// render returns the canvas with runs of same-class cells styled by p.
func (c *canvas) render(p *Palette) string {
	lines := make([]string, len(c.rows))
	for i, row := range c.rows {
		var (
			b   strings.Builder
			run strings.Builder
			cur class
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := p.style(cur); ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.wide {
				continue
			}
			if cl.cls != cur {
				flush()
				cur = cl.cls
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// fit truncates s to width cells, appending "…" when cut, and pads it to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
