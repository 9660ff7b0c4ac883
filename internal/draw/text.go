package draw

import (
	"github.com/mattn/go-runewidth"
)

// TextWidth returns the number of terminal columns s occupies.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TextAt writes s into the text layer starting at the 1-based canvas cell
// (col, row). Cells outside the canvas are clipped. Zero-width runes (variation
// selectors, combining marks) attach to the preceding cell.
func (c *Canvas) TextAt(col, row int, s string, fg RGBA) {
	c.writeText(col, row, s, fg, nil)
}

// TextBoxAt is TextAt with bg composited behind every written cell.
func (c *Canvas) TextBoxAt(col, row int, s string, fg, bg RGBA) {
	c.writeText(col, row, s, fg, &bg)
}

// CenterText writes s horizontally centered on the canvas at the 1-based row.
func (c *Canvas) CenterText(row int, s string, fg RGBA) {
	c.TextAt((c.termWidth-TextWidth(s))/2+1, row, s, fg)
}

// DrawText writes s centered on the logical point (x, y). The origin applies,
// so shaken text moves with the rest of the effects layer.
func (c *Canvas) DrawText(x, y float64, s string, fg RGBA) {
	col, row := c.LogicalToTerminal(x, y)
	c.TextAt(col-TextWidth(s)/2, row, s, fg)
}

func (c *Canvas) writeText(col, row int, s string, fg RGBA, bg *RGBA) {
	r := row - 1
	if r < 0 || r >= c.termHeight || s == "" {
		return
	}
	x := col - 1
	last := -1 // Index of the last written cell, for zero-width runes
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			if last >= 0 {
				c.cells[last].text += string(ch)
			}
			continue
		}
		if x < 0 || x+w > c.termWidth {
			x += w
			last = -1
			continue
		}
		idx := r*c.termWidth + x
		c.clearWide(idx, x)
		c.cells[idx] = textCell{text: string(ch), fg: fg, bg: bg}
		if w == 2 {
			c.clearWide(idx+1, x+1)
			c.cells[idx+1] = textCell{cont: true, bg: bg}
		}
		last = idx
		x += w
	}
}

// clearWide breaks up a wide glyph that is partially overwritten.
func (c *Canvas) clearWide(idx, x int) {
	cell := c.cells[idx]
	switch {
	case cell.cont && x > 0:
		c.cells[idx-1] = textCell{}
	case !cell.cont && cell.text != "" && x+1 < c.termWidth && c.cells[idx+1].cont:
		c.cells[idx+1] = textCell{}
	}
}

// Text returns the text-layer content of the 1-based canvas cell, or "".
func (c *Canvas) Text(col, row int) string {
	if col < 1 || col > c.termWidth || row < 1 || row > c.termHeight {
		return ""
	}
	return c.cells[(row-1)*c.termWidth+col-1].text
}
