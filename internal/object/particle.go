package object

import (
	"time"

	"github.com/tomz197/kedusha/internal/draw"
)

// ParticleKind identifies a particle variant.
type ParticleKind int

const (
	KindHalo      ParticleKind = iota // Expanding filled glow
	KindShockwave                     // Expanding two-tone ring
	KindFlash                         // Stationary fading disc
	KindShard                         // Rotating square
	KindSpark                         // Glyph particle
	KindDot                           // Plain coloured dot
)

func (k ParticleKind) String() string {
	switch k {
	case KindHalo:
		return "halo"
	case KindShockwave:
		return "shockwave"
	case KindFlash:
		return "flash"
	case KindShard:
		return "shard"
	case KindSpark:
		return "spark"
	case KindDot:
		return "dot"
	default:
		return "unknown"
	}
}

// Particle is a short-lived visual effect. Each variant carries only the
// fields it needs.
type Particle interface {
	Object
	Kind() ParticleKind
	Life() (remaining, total time.Duration)
	Position() (x, y float64)
}

// ring is the growth shared by halos and shockwaves: the radius goes from 0
// to MaxRadius linearly over the lifetime.
type ring struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	lifetime
}

func (r *ring) grow(ms float64) bool {
	if r.tick(ms) {
		return true
	}
	r.Radius = (1 - r.life/r.maxLife) * r.MaxRadius
	return false
}

// Position returns the ring center.
func (r *ring) Position() (float64, float64) { return r.X, r.Y }

// Halo is a soft radial glow expanding from its center.
type Halo struct {
	ring
	Color draw.RGBA
}

// NewHalo creates a halo.
func NewHalo(x, y, maxRadius float64, life time.Duration, color draw.RGBA) *Halo {
	return &Halo{ring: ring{X: x, Y: y, MaxRadius: maxRadius, lifetime: newLifetime(ms(life))}, Color: color}
}

func (p *Halo) Kind() ParticleKind { return KindHalo }

func (p *Halo) Update(ctx UpdateContext) bool { return p.grow(ctx.Millis()) }

func (p *Halo) Draw(ctx DrawContext) {
	a := p.alpha()
	ctx.Canvas.RadialGradient(p.X, p.Y, p.Radius, []draw.Stop{
		{Offset: 0, Color: p.Color.Fade(a)},
		{Offset: 1, Color: p.Color.WithAlpha(0)},
	})
}

// Shockwave is a ring that switches from Inner to Outer colour at half life.
type Shockwave struct {
	ring
	Inner, Outer draw.RGBA
}

// NewShockwave creates a shockwave.
func NewShockwave(x, y, maxRadius float64, life time.Duration, inner, outer draw.RGBA) *Shockwave {
	return &Shockwave{ring: ring{X: x, Y: y, MaxRadius: maxRadius, lifetime: newLifetime(ms(life))}, Inner: inner, Outer: outer}
}

func (p *Shockwave) Kind() ParticleKind { return KindShockwave }

func (p *Shockwave) Update(ctx UpdateContext) bool { return p.grow(ctx.Millis()) }

// Color returns the stroke colour for the current life fraction.
func (p *Shockwave) Color() draw.RGBA {
	a := p.alpha()
	if a > 0.5 {
		return p.Inner.Fade(a)
	}
	return p.Outer.Fade(a)
}

func (p *Shockwave) Draw(ctx DrawContext) {
	ctx.Canvas.StrokeCircle(p.X, p.Y, p.Radius, 3, p.Color())
}

// Flash is a disc of fixed radius that fades in place.
type Flash struct {
	X, Y   float64
	Radius float64
	Color  draw.RGBA
	lifetime
}

// NewFlash creates a flash.
func NewFlash(x, y, radius float64, life time.Duration, color draw.RGBA) *Flash {
	return &Flash{X: x, Y: y, Radius: radius, Color: color, lifetime: newLifetime(ms(life))}
}

func (p *Flash) Kind() ParticleKind { return KindFlash }

func (p *Flash) Position() (float64, float64) { return p.X, p.Y }

func (p *Flash) Update(ctx UpdateContext) bool { return p.tick(ctx.Millis()) }

func (p *Flash) Draw(ctx DrawContext) {
	ctx.Canvas.FillCircle(p.X, p.Y, p.Radius, p.Color.Fade(p.alpha()))
}

// shardColor is the fill for every shard.
var shardColor = draw.MustHex("#FF6666")

// Shard is a spinning square flung outward.
type Shard struct {
	motion
	Size     float64
	Rotation float64 // Radians
	Spin     float64 // Radians per reference frame
	lifetime
}

// NewShard creates a shard.
func NewShard(x, y, vx, vy, size, rotation, spin float64, life time.Duration) *Shard {
	return &Shard{
		motion:   motion{X: x, Y: y, VX: vx, VY: vy},
		Size:     size,
		Rotation: rotation,
		Spin:     spin,
		lifetime: newLifetime(ms(life)),
	}
}

func (p *Shard) Kind() ParticleKind { return KindShard }

func (p *Shard) Position() (float64, float64) { return p.X, p.Y }

func (p *Shard) Update(ctx UpdateContext) bool {
	if p.tick(ctx.Millis()) {
		return true
	}
	frames := ctx.Frames()
	p.integrate(frames, true)
	p.Rotation += p.Spin * frames
	return false
}

func (p *Shard) Draw(ctx DrawContext) {
	ctx.Canvas.FillRotatedRect(p.X, p.Y, p.Size, p.Size, p.Rotation, shardColor.Fade(p.alpha()))
}

// sparkFadeGlyph is the alpha below which a spark is drawn as a dot, since
// terminal glyphs cannot fade.
const sparkFadeGlyph = 0.3

// Spark is a glyph particle. Color is used for its dot once it fades.
type Spark struct {
	motion
	Size  float64
	Glyph string
	Color draw.RGBA
	lifetime
}

// NewSpark creates a spark.
func NewSpark(x, y, vx, vy, size float64, glyph string, color draw.RGBA, life time.Duration) *Spark {
	return &Spark{
		motion:   motion{X: x, Y: y, VX: vx, VY: vy},
		Size:     size,
		Glyph:    glyph,
		Color:    color,
		lifetime: newLifetime(ms(life)),
	}
}

func (p *Spark) Kind() ParticleKind { return KindSpark }

func (p *Spark) Position() (float64, float64) { return p.X, p.Y }

func (p *Spark) Update(ctx UpdateContext) bool {
	if p.tick(ctx.Millis()) {
		return true
	}
	p.integrate(ctx.Frames(), true)
	return false
}

func (p *Spark) Draw(ctx DrawContext) {
	a := p.alpha()
	if a < sparkFadeGlyph {
		ctx.Canvas.FillCircle(p.X, p.Y, p.Size, p.Color.Fade(a/sparkFadeGlyph))
		return
	}
	ctx.Canvas.DrawText(p.X, p.Y, p.Glyph, p.Color.WithAlpha(a))
}

// Dot is a plain coloured particle.
type Dot struct {
	motion
	Size  float64
	Color draw.RGBA
	lifetime
}

// NewDot creates a dot.
func NewDot(x, y, vx, vy, size float64, color draw.RGBA, life time.Duration) *Dot {
	return &Dot{
		motion:   motion{X: x, Y: y, VX: vx, VY: vy},
		Size:     size,
		Color:    color,
		lifetime: newLifetime(ms(life)),
	}
}

func (p *Dot) Kind() ParticleKind { return KindDot }

func (p *Dot) Position() (float64, float64) { return p.X, p.Y }

func (p *Dot) Update(ctx UpdateContext) bool {
	if p.tick(ctx.Millis()) {
		return true
	}
	p.integrate(ctx.Frames(), true)
	return false
}

func (p *Dot) Draw(ctx DrawContext) {
	ctx.Canvas.FillCircle(p.X, p.Y, p.Size, p.Color.Fade(p.alpha()))
}

var (
	_ Particle = (*Halo)(nil)
	_ Particle = (*Shockwave)(nil)
	_ Particle = (*Flash)(nil)
	_ Particle = (*Shard)(nil)
	_ Particle = (*Spark)(nil)
	_ Particle = (*Dot)(nil)
)

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
