package object

import (
	"strings"
	"time"

	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/loop/config"
)

// Guide is the mascot in the corner of the playfield. It shows one speech
// bubble at a time; a new line replaces the current one.
type Guide struct {
	X, Y float64

	text      string
	visible   bool
	remaining time.Duration
}

// NewGuide creates a silent mascot at its home position.
func NewGuide() *Guide {
	return &Guide{X: config.MascotX, Y: config.MascotY}
}

// Speak shows text for d, or for SpeechDuration if d is not positive.
func (g *Guide) Speak(text string, d time.Duration) {
	if d <= 0 {
		d = config.SpeechDuration
	}
	g.text = text
	g.visible = true
	g.remaining = d
}

// Hide removes the speech bubble.
func (g *Guide) Hide() {
	g.visible = false
	g.remaining = 0
}

// Speaking reports whether a bubble is showing.
func (g *Guide) Speaking() bool {
	return g.visible
}

// Text returns the current line, or "" when silent.
func (g *Guide) Text() string {
	if !g.visible {
		return ""
	}
	return g.text
}

// Update counts down the speech timer.
func (g *Guide) Update(ctx UpdateContext) bool {
	if g.visible {
		g.remaining -= ctx.Delta
		if g.remaining <= 0 {
			g.Hide()
		}
	}
	return false
}

type sprite struct {
	x, y, w, h float64
	color      draw.RGBA
}

var (
	skin   = draw.MustHex("#FFCC99")
	beard  = draw.MustHex("#FFFFFF")
	robe   = draw.MustHex("#8B4513")
	shadow = draw.MustHex("#654321")

	guideSprite = []sprite{
		// Face
		{15, 8, 30, 22, skin}, {12, 12, 36, 14, skin}, {10, 16, 40, 8, skin},
		// Hat
		{18, 2, 24, 8, draw.MustHex("#1a1a1a")}, {16, 6, 28, 6, draw.MustHex("#1a1a1a")}, {14, 8, 32, 4, draw.MustHex("#1a1a1a")},
		// Glasses
		{16, 14, 10, 8, draw.MustHex("#333333")}, {34, 14, 10, 8, draw.MustHex("#333333")}, {26, 16, 8, 3, draw.MustHex("#333333")},
		{17, 15, 8, 6, draw.MustHex("#f8f8f8")}, {35, 15, 8, 6, draw.MustHex("#f8f8f8")},
		{19, 17, 4, 3, draw.Black}, {37, 17, 4, 3, draw.Black},
		// Nose
		{28, 20, 4, 3, draw.MustHex("#FFB366")},
		// Beard
		{14, 24, 32, 16, beard}, {12, 28, 36, 12, beard}, {10, 32, 40, 10, beard}, {8, 36, 44, 8, beard},
		// Robe
		{6, 44, 48, 24, robe}, {4, 50, 52, 18, robe},
		{8, 46, 4, 20, shadow}, {44, 46, 4, 20, shadow}, {6, 64, 48, 4, shadow},
		// Book and hands
		{36, 48, 14, 10, draw.MustHex("#DAA520")}, {38, 50, 10, 6, draw.MustHex("#B8860B")},
		{32, 50, 6, 4, skin}, {48, 52, 6, 4, skin},
	}

	bubbleText = draw.MustHex("#2C3E50")
	bubbleFill = draw.RGBAf(255, 255, 255, 0.95)
)

const (
	bubbleY        = 120.0 // Logical y of the first bubble line
	bubbleMaxWidth = 28    // Columns
)

// Draw renders the mascot sprite and, when speaking, its bubble centered
// near the top of the playfield.
func (g *Guide) Draw(ctx DrawContext) {
	c := ctx.Canvas
	for _, s := range guideSprite {
		c.FillRect(g.X+s.x, g.Y+s.y, s.w, s.h, s.color)
	}
	if !g.visible {
		return
	}

	lines := wrapWords(g.text, bubbleMaxWidth)
	width := 0
	for _, l := range lines {
		width = max(width, draw.TextWidth(l))
	}
	_, row := c.LogicalToTerminal(0, bubbleY)
	col := (c.TerminalWidth()-width-2)/2 + 1
	for i, l := range lines {
		pad := strings.Repeat(" ", width-draw.TextWidth(l))
		c.TextBoxAt(col, row+i, " "+l+pad+" ", bubbleText, bubbleFill)
	}
}

// wrapWords breaks s into lines of at most width columns. Words wider than
// width get a line of their own.
func wrapWords(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(s) {
		w := draw.TextWidth(word)
		if curWidth > 0 && curWidth+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

var _ Object = (*Guide)(nil)
