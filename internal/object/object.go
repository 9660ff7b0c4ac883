// Package object holds the game's entities: falling items, click animations,
// particles, floating texts, the effects engine and the mascot.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/loop/config"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta time.Duration
	Rand  *rand.Rand
}

// Frames returns the delta measured in reference frames. Per-frame speeds
// and accelerations are multiplied by it.
func (ctx UpdateContext) Frames() float64 {
	return float64(ctx.Delta) / float64(config.ReferenceFrame)
}

// Millis returns the delta in milliseconds.
func (ctx UpdateContext) Millis() float64 {
	return float64(ctx.Delta) / float64(time.Millisecond)
}

// DrawContext provides drawing resources for objects.
// Drawing never mutates game state; Rand only feeds cosmetic jitter.
type DrawContext struct {
	Canvas  *draw.Canvas
	Elapsed time.Duration // Time since the session was created, drives ambient animation
	Rand    *rand.Rand
}

// ElapsedMillis returns Elapsed in milliseconds.
func (ctx DrawContext) ElapsedMillis() float64 {
	return float64(ctx.Elapsed) / float64(time.Millisecond)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext)
}

// lifetime is the countdown shared by particles and floating texts.
type lifetime struct {
	life    float64 // Milliseconds remaining
	maxLife float64
}

func newLifetime(ms float64) lifetime {
	return lifetime{life: ms, maxLife: ms}
}

// tick consumes ms and reports whether the lifetime ran out.
func (l *lifetime) tick(ms float64) bool {
	l.life -= ms
	return l.life <= 0
}

// alpha is the remaining-life fraction used for linear fade-out.
func (l lifetime) alpha() float64 {
	if l.maxLife <= 0 || l.life <= 0 {
		return 0
	}
	return l.life / l.maxLife
}

// Life returns the remaining and total lifetime.
func (l lifetime) Life() (remaining, total time.Duration) {
	return time.Duration(l.life * float64(time.Millisecond)), time.Duration(l.maxLife * float64(time.Millisecond))
}

// motion is a point integrated from velocity, in pixels per reference frame.
type motion struct {
	X, Y   float64
	VX, VY float64
}

func (m *motion) integrate(frames float64, gravity bool) {
	m.X += m.VX * frames
	m.Y += m.VY * frames
	if gravity {
		m.VY += config.Gravity * frames
	}
}
