package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Implements io.Writer for Canvas.Render.
type ChunkWriter struct {
	buf  strings.Builder
	bufw *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// Write implements io.Writer for use with Canvas.Render and other writers.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer. Uses the same chunk size as Canvas.Render.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ANSI control sequences.
const (
	seqClear        = "\033[H\033[2J"
	seqHideCursor   = "\033[?25l"
	seqShowCursor   = "\033[?25h"
	seqAltScreenOn  = "\033[?1049h"
	seqAltScreenOff = "\033[?1049l"
	seqMouseOn      = "\033[?1000h\033[?1006h" // Button events, SGR encoding
	seqMouseOff     = "\033[?1006l\033[?1000l"
	seqReset        = "\033[0m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, seqClear)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, seqShowCursor)
}

// Presenter puts a finished canvas on screen.
type Presenter interface {
	Present(c *Canvas) error
	// Clear blanks the screen before the next Present (resize, screen change).
	Clear()
	Size() (width, height int, err error)
	Close() error
}

// ANSIPresenter writes canvases as escape sequences to a raw terminal or SSH session.
type ANSIPresenter struct {
	w        io.Writer
	cw       *ChunkWriter
	sizeFunc TermSizeFunc
	cleared  bool
}

// NewANSIPresenter switches w to the alternate screen with mouse reporting and
// returns a presenter drawing into it. Close restores the terminal.
func NewANSIPresenter(w io.Writer, sizeFunc TermSizeFunc) *ANSIPresenter {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	fmt.Fprint(w, seqAltScreenOn+seqHideCursor+seqMouseOn+seqClear)
	return &ANSIPresenter{w: w, cw: NewChunkWriter(w), sizeFunc: sizeFunc}
}

// Present renders the changed cells of c and flushes them.
func (p *ANSIPresenter) Present(c *Canvas) error {
	if p.cleared {
		c.ForceRedraw()
		p.cleared = false
	}
	c.Render(p.cw)
	c.RenderBorder(p.cw)
	return p.cw.Flush()
}

// Clear queues a full terminal clear.
func (p *ANSIPresenter) Clear() {
	p.cw.WriteString(seqReset + seqClear)
	p.cleared = true
}

// Size reports the terminal size.
func (p *ANSIPresenter) Size() (int, int, error) {
	return p.sizeFunc()
}

// Close disables mouse reporting and leaves the alternate screen.
func (p *ANSIPresenter) Close() error {
	p.cw.WriteString(seqReset + seqMouseOff + seqClear + seqShowCursor + seqAltScreenOff)
	return p.cw.Flush()
}

var _ Presenter = (*ANSIPresenter)(nil)
