package object

import (
	"time"

	"github.com/tomz197/kedusha/internal/draw"
)

// FloatingText is a short label drifting vertically while it fades.
type FloatingText struct {
	X, Y  float64
	VY    float64 // Pixels per reference frame
	Text  string
	Color draw.RGBA
	Shake bool // Jitter the draw position every frame
	lifetime
}

// NewFloatingText creates a label at (x, y).
func NewFloatingText(x, y, vy float64, text string, color draw.RGBA, shake bool, life time.Duration) *FloatingText {
	return &FloatingText{
		X:        x,
		Y:        y,
		VY:       vy,
		Text:     text,
		Color:    color,
		Shake:    shake,
		lifetime: newLifetime(ms(life)),
	}
}

// Update moves the label. Returns true once its life is spent.
func (t *FloatingText) Update(ctx UpdateContext) bool {
	if t.tick(ctx.Millis()) {
		return true
	}
	t.Y += t.VY * ctx.Frames()
	return false
}

// Draw writes the label centered on its position.
func (t *FloatingText) Draw(ctx DrawContext) {
	x, y := t.X, t.Y
	if t.Shake && ctx.Rand != nil {
		x += (ctx.Rand.Float64() - 0.5) * 4
		y += (ctx.Rand.Float64() - 0.5) * 2
	}
	ctx.Canvas.DrawText(x, y, t.Text, t.Color.WithAlpha(t.alpha()))
}

var _ Object = (*FloatingText)(nil)
