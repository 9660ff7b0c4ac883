package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block
// characters, plus a text layer addressed in terminal cells.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]
	cells          []textCell       // Flat slice: [row * termWidth + col]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Translation applied to logical drawing calls (screen shake).
	originX, originY float64

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	prev        []cellState // Last rendered frame, for diffing
	forceRedraw bool

	renderBuf strings.Builder // Buffer for batching render output
}

// textCell is one terminal cell of the text layer.
type textCell struct {
	text string // Empty when the cell shows pixels
	fg   RGBA
	bg   *RGBA // Optional fill behind the text, composited over the pixels
	cont bool  // Right half of a wide glyph drawn in the cell to the left
}

// cellState is the resolved appearance of a cell, compared between frames.
type cellState struct {
	top, bottom [3]uint8
	fg          [3]uint8
	text        string
	cont        bool
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.cells = make([]textCell, termHeight*termWidth)
		c.prev = nil
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// SetOrigin translates all subsequent logical drawing calls by (x, y).
func (c *Canvas) SetOrigin(x, y float64) {
	c.originX = x
	c.originY = y
}

// Clear resets all pixels to black, empties the text layer and resets the origin.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.cells)
	c.originX, c.originY = 0, 0
}

// blendPixel composites col over the pixel at actual terminal coordinates (no scaling).
func (c *Canvas) blendPixel(x, y int, col RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = over(c.pixels[i], col)
	}
}

// Pixel returns the colour at actual pixel coordinates. Out of range reads are black.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return colorful.Color{}
}

// toPixel maps a logical point to fractional pixel coordinates.
func (c *Canvas) toPixel(x, y float64) (float64, float64) {
	return (x + c.originX) * c.scaleX, (y + c.originY) * c.scaleY
}

// toLogical maps the center of a pixel back to logical coordinates (origin removed).
func (c *Canvas) toLogical(px, py int) (float64, float64) {
	return (float64(px)+0.5)/c.scaleX - c.originX, (float64(py)+0.5)/c.scaleY - c.originY
}

// pixelBounds returns the clipped pixel rectangle [x0, x1) x [y0, y1) covering a
// logical box. Non-empty boxes cover at least one pixel.
func (c *Canvas) pixelBounds(x, y, w, h float64) (x0, y0, x1, y1 int) {
	fx0, fy0 := c.toPixel(x, y)
	fx1, fy1 := c.toPixel(x+w, y+h)
	x0, y0 = int(math.Floor(fx0)), int(math.Floor(fy0))
	x1, y1 = int(math.Ceil(fx1)), int(math.Ceil(fy1))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.termWidth), min(y1, c.subPixelHeight)
	return
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// state resolves the appearance of the cell at 0-based (col, row).
func (c *Canvas) state(col, row int) cellState {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	cell := c.cells[row*c.termWidth+col]
	if cell.cont {
		return cellState{cont: true}
	}
	if cell.text == "" {
		return cellState{top: rgb8(top), bottom: rgb8(bottom)}
	}
	bg := top.BlendRgb(bottom, 0.5)
	if cell.bg != nil {
		bg = over(bg, *cell.bg)
	}
	return cellState{
		top:    rgb8(bg),
		bottom: rgb8(bg),
		fg:     rgb8(over(bg, cell.fg)),
		text:   cell.text,
	}
}

// Render outputs the canvas to the writer as truecolor half-block characters.
// Only cells that changed since the previous Render are written.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	if len(c.prev) != len(c.cells) {
		c.prev = make([]cellState, len(c.cells))
		c.forceRedraw = true
	}

	var lastFg, lastBg [3]uint8
	haveColors := false
	nextCol, nextRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			st := c.state(col, row)
			if !c.forceRedraw && c.prev[idx] == st {
				continue
			}
			c.prev[idx] = st
			if st.cont {
				continue
			}

			if col != nextCol || row != nextRow {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			}

			fg, bg, text, width := st.top, st.bottom, string(BlockUpperHalf), 1
			if st.text != "" {
				fg, bg, text = st.fg, st.top, st.text
				if col+1 < c.termWidth && c.cells[idx+1].cont {
					width = 2
				}
			}
			if !haveColors || fg != lastFg {
				fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%dm", fg[0], fg[1], fg[2])
				lastFg = fg
			}
			if !haveColors || bg != lastBg {
				fmt.Fprintf(&c.renderBuf, "\033[48;2;%d;%d;%dm", bg[0], bg[1], bg[2])
				lastBg = bg
			}
			haveColors = true
			c.renderBuf.WriteString(text)
			nextCol, nextRow = col+width, row
		}
	}
	c.forceRedraw = false
	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString("\033[0m")

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString("\033[0m")

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// ScaleX returns terminal columns per logical unit.
func (c *Canvas) ScaleX() float64 {
	return c.scaleX
}

// LogicalToTerminal converts logical coordinates to a 1-based position (col, row)
// relative to the canvas. The current origin is applied.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return int(math.Floor(px)) + 1, int(math.Floor(py))/2 + 1
}

// TerminalToLogical converts a 1-based screen position (as reported by mouse
// events, including the centering offset) to logical coordinates. ok is false
// when the position lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(cx) + 0.5) * (c.logicalWidth / float64(c.termWidth))
	y = (float64(cy)*2 + 1) * (c.logicalHeight / float64(c.subPixelHeight))
	return x, y, true
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)
