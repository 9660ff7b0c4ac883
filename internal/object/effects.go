package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/loop/config"
)

// Burst colours.
var (
	haloColor     = draw.RGBAf(255, 215, 0, 0.8)
	shockInner    = draw.RGBAf(255, 0, 0, 0.6)
	shockOuter    = draw.RGBAf(0, 100, 255, 0.4)
	flashColor    = draw.RGBAf(255, 255, 255, 0.8)
	sparkColor    = draw.MustHex("#FFD700")
	positiveLabel = draw.MustHex("#FFD700")
	negativeLabel = draw.MustHex("#FF4444")
	sparkleColors = []draw.RGBA{draw.MustHex("#FFD700"), draw.MustHex("#FFA500"), draw.MustHex("#FF69B4"), draw.MustHex("#00CED1")}
	explodeColors = []draw.RGBA{draw.MustHex("#FF4444"), draw.MustHex("#CC0000"), draw.MustHex("#FF6666")}
	sparkGlyphs   = []string{"✨", "⭐"}
	explodeGlyphs = []string{"💥", "❌", "🚫"}
)

// Effects owns every live particle and floating text, plus the screen shake.
type Effects struct {
	particles []Particle
	texts     []*FloatingText
	rng       *rand.Rand

	shakeIntensity float64 // Pixels
	shakeRemaining float64 // Milliseconds
}

// NewEffects creates an empty effects engine drawing randomness from rng.
func NewEffects(rng *rand.Rand) *Effects {
	return &Effects{rng: rng}
}

// Add appends a particle.
func (e *Effects) Add(p Particle) {
	e.particles = append(e.particles, p)
}

// AddText appends a floating text.
func (e *Effects) AddText(t *FloatingText) {
	e.texts = append(e.texts, t)
}

// PositiveBurst emits the collect feedback at (x, y): a golden halo, eight
// glyph sparks radiating outward and a rising label.
func (e *Effects) PositiveBurst(x, y float64, label string) {
	e.Add(NewHalo(x, y, 50, time.Second, haloColor))

	const sparks = 8
	for i := 0; i < sparks; i++ {
		angle := float64(i)/sparks*2*math.Pi + e.rng.Float64()*0.5
		speed := 2 + e.rng.Float64()*3
		e.Add(NewSpark(
			x, y,
			math.Cos(angle)*speed, math.Sin(angle)*speed,
			3+e.rng.Float64()*2,
			sparkGlyphs[e.rng.Intn(len(sparkGlyphs))],
			sparkColor,
			800*time.Millisecond,
		))
	}

	e.AddText(NewFloatingText(x, y, -1, label, positiveLabel, false, 600*time.Millisecond))
}

// NegativeBurst emits the mistake feedback at (x, y): a red/blue shockwave, a
// white flash, six spinning shards and a sinking, jittering label.
func (e *Effects) NegativeBurst(x, y float64, label string) {
	e.Add(NewShockwave(x, y, 40, 150*time.Millisecond, shockInner, shockOuter))
	e.Add(NewFlash(x, y, 25, 100*time.Millisecond, flashColor))

	const shards = 6
	for i := 0; i < shards; i++ {
		angle := float64(i)/shards*2*math.Pi + e.rng.Float64()*0.3
		speed := 1.5 + e.rng.Float64()*2
		e.Add(NewShard(
			x, y,
			math.Cos(angle)*speed, math.Sin(angle)*speed,
			4+e.rng.Float64()*3,
			e.rng.Float64()*2*math.Pi,
			(e.rng.Float64()-0.5)*0.2,
			500*time.Millisecond,
		))
	}

	e.AddText(NewFloatingText(x, y, 0.5, label, negativeLabel, true, 500*time.Millisecond))
}

// Sparkles scatters eight coloured dots around (x, y) with an upward kick.
func (e *Effects) Sparkles(x, y float64) {
	for i := 0; i < 8; i++ {
		e.Add(NewDot(
			x+(e.rng.Float64()-0.5)*40,
			y+(e.rng.Float64()-0.5)*40,
			(e.rng.Float64()-0.5)*4,
			(e.rng.Float64()-0.5)*4-2,
			3+e.rng.Float64()*3,
			sparkleColors[e.rng.Intn(len(sparkleColors))],
			time.Second,
		))
	}
}

// Explosion shakes the screen and throws six warning glyphs from (x, y).
func (e *Effects) Explosion(x, y float64) {
	e.Shake(10, 300*time.Millisecond)
	for i := 0; i < 6; i++ {
		e.Add(NewSpark(
			x+(e.rng.Float64()-0.5)*30,
			y+(e.rng.Float64()-0.5)*30,
			(e.rng.Float64()-0.5)*6,
			(e.rng.Float64()-0.5)*6-3,
			4+e.rng.Float64()*4,
			explodeGlyphs[e.rng.Intn(len(explodeGlyphs))],
			explodeColors[e.rng.Intn(len(explodeColors))],
			800*time.Millisecond,
		))
	}
}

// Shake starts a screen shake of the given intensity in pixels.
// A stronger or longer shake replaces a weaker one.
func (e *Effects) Shake(intensity float64, duration time.Duration) {
	e.shakeIntensity = math.Max(e.shakeIntensity, intensity)
	e.shakeRemaining = math.Max(e.shakeRemaining, ms(duration))
}

// ShakeIntensity returns the current shake amplitude in pixels.
func (e *Effects) ShakeIntensity() float64 {
	return e.shakeIntensity
}

// Update advances all particles, texts and the shake, dropping anything whose life ran out.
func (e *Effects) Update(ctx UpdateContext) {
	if e.shakeRemaining > 0 {
		e.shakeRemaining -= ctx.Millis()
		e.shakeIntensity *= math.Pow(config.ShakeDecay, ctx.Frames())
		if e.shakeRemaining <= 0 {
			e.shakeRemaining = 0
			e.shakeIntensity = 0
		}
	}

	kept := e.particles[:0]
	for _, p := range e.particles {
		if !p.Update(ctx) {
			kept = append(kept, p)
		}
	}
	clear(e.particles[len(kept):])
	e.particles = kept

	keptTexts := e.texts[:0]
	for _, t := range e.texts {
		if !t.Update(ctx) {
			keptTexts = append(keptTexts, t)
		}
	}
	clear(e.texts[len(keptTexts):])
	e.texts = keptTexts
}

// Draw composites all particles then all texts, offset by the current shake.
func (e *Effects) Draw(ctx DrawContext) {
	if e.shakeIntensity > 0 && ctx.Rand != nil {
		ctx.Canvas.SetOrigin(
			(ctx.Rand.Float64()-0.5)*e.shakeIntensity,
			(ctx.Rand.Float64()-0.5)*e.shakeIntensity,
		)
		defer ctx.Canvas.SetOrigin(0, 0)
	}
	for _, p := range e.particles {
		p.Draw(ctx)
	}
	for _, t := range e.texts {
		t.Draw(ctx)
	}
}

// Clear drops every particle and text and stops the shake.
func (e *Effects) Clear() {
	clear(e.particles)
	e.particles = e.particles[:0]
	clear(e.texts)
	e.texts = e.texts[:0]
	e.shakeIntensity = 0
	e.shakeRemaining = 0
}

// Particles returns the live particles. The slice is owned by Effects.
func (e *Effects) Particles() []Particle {
	return e.particles
}

// Texts returns the live floating texts. The slice is owned by Effects.
func (e *Effects) Texts() []*FloatingText {
	return e.texts
}

// Len returns the number of live particles and texts.
func (e *Effects) Len() int {
	return len(e.particles) + len(e.texts)
}
