package object

import (
	"math"

	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/loop/config"
	"github.com/tomz197/kedusha/internal/physics"
)

// Category separates items the player should click from items to avoid.
type Category int

const (
	Beneficial Category = iota
	Forbidden
)

func (c Category) String() string {
	if c == Beneficial {
		return "beneficial"
	}
	return "forbidden"
}

// Glyph pools per category, and the glyphs an item shows once resolved.
var (
	BeneficialGlyphs = []string{"🕯️", "🍞", "🍷", "📖", "🌟", "💎"}
	ForbiddenGlyphs  = []string{"📱", "💵", "💡", "💻", "🚗", "⚡"}
)

const (
	CollectedGlyph = "✨"
	BrokenGlyph    = "💥"
)

// Item is a falling collectible. X, Y is the top-left corner of its
// Size x Size box; Y grows as it falls.
type Item struct {
	X, Y     float64
	Size     float64
	Speed    float64 // Pixels per reference frame
	Category Category
	Glyph    string
	Clicked  bool            // Set once; a clicked item is never resolved again
	Anim     *ClickAnimation // At most one, nil at rest
}

// NewItem creates an item just above the top edge.
func NewItem(x, speed float64, category Category, glyph string) *Item {
	return &Item{
		X:        x,
		Y:        config.SpawnY,
		Size:     config.ItemSize,
		Speed:    speed,
		Category: category,
		Glyph:    glyph,
	}
}

// Center returns the middle of the item's box.
func (it *Item) Center() (float64, float64) {
	return it.X + it.Size/2, it.Y + it.Size/2
}

// Contains reports whether (x, y) hits the item's padded box.
func (it *Item) Contains(x, y float64) bool {
	return physics.PointInPaddedSquare(x, y, it.X, it.Y, it.Size, config.HitPadding)
}

// Exited reports whether the item has fallen past the bottom of a canvas of the given height.
func (it *Item) Exited(height float64) bool {
	return it.Y > height+config.ExitMargin
}

// Resolve marks the item clicked, starts its click animation and swaps its
// glyph. Returns false if the item was already resolved.
func (it *Item) Resolve() bool {
	if it.Clicked {
		return false
	}
	it.Clicked = true
	if it.Category == Beneficial {
		it.Anim = NewClickAnimation(Positive)
		it.Glyph = CollectedGlyph
	} else {
		it.Anim = NewClickAnimation(Negative)
		it.Glyph = BrokenGlyph
	}
	return true
}

// Update moves the item down and advances its click animation. Returns true
// when a clicked item has finished animating.
func (it *Item) Update(ctx UpdateContext) bool {
	it.Y += it.Speed * ctx.Frames()
	if it.Anim == nil {
		return false
	}
	if it.Anim.Update(ctx.Delta, ctx.Rand) {
		it.Anim = nil
		return it.Clicked
	}
	return false
}

// Glow colours.
var (
	glowGold   = draw.RGB(255, 215, 0)
	glowOrange = draw.RGB(255, 165, 0)
	plateLight = draw.RGBAf(255, 255, 255, 0.25)
	plateDark  = draw.RGBAf(40, 0, 60, 0.35)
)

// Draw renders the glow, a plate showing the click animation, and the glyph.
func (it *Item) Draw(ctx DrawContext) {
	scale, rotation := 1.0, 0.0
	if it.Anim != nil {
		scale, rotation = it.Anim.Scale, it.Anim.Rotation
	}
	cx, cy := it.Center()
	c := ctx.Canvas

	if it.Category == Beneficial {
		intensity := 0.7 + 0.3*math.Sin(ctx.ElapsedMillis()*0.008)
		radius := it.Size * (1.2 + intensity*0.3) * scale / 2
		c.RadialGradient(cx, cy, radius, []draw.Stop{
			{Offset: 0, Color: glowGold.WithAlpha(intensity * 0.4)},
			{Offset: 0.7, Color: glowOrange.WithAlpha(intensity * 0.2)},
			{Offset: 1, Color: glowGold.WithAlpha(0)},
		})
		c.FillRotatedRect(cx, cy, it.Size*0.6*scale, it.Size*0.6*scale, rotation, plateLight)
	} else {
		var r, b uint8 = 100, 150
		if ctx.Rand.Float64() > 0.5 {
			r = 255
		}
		if ctx.Rand.Float64() > 0.5 {
			b = 255
		}
		flicker := 0.5 + 0.5*ctx.Rand.Float64()
		c.RadialGradient(cx, cy, it.Size*1.3*scale/2, []draw.Stop{
			{Offset: 0, Color: draw.RGBAf(r, 50, b, flicker*0.3)},
			{Offset: 0.8, Color: draw.RGBAf(r, 30, b, flicker*0.1)},
			{Offset: 1, Color: draw.RGBAf(255, 0, 0, 0)},
		})
		c.FillRotatedRect(cx, cy, it.Size*0.6*scale, it.Size*0.6*scale, rotation, plateDark)
	}

	// Rotation shifts the glyph sideways since terminal text cannot rotate.
	c.DrawText(cx+rotation*it.Size, cy, it.Glyph, draw.White)
}

var _ Object = (*Item)(nil)
