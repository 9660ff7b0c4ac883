package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/kedusha/internal/loop/config"
)

// Direction selects the click feedback style.
type Direction int

const (
	Positive Direction = 1  // Swell to 1.2 and back
	Negative Direction = -1 // Shrink to 0.8 and back while shaking
)

// ClickAnimation is the transient scale/rotation applied to an item after it
// is clicked.
type ClickAnimation struct {
	Direction Direction
	Remaining time.Duration
	Scale     float64
	Rotation  float64 // Radians
}

// NewClickAnimation starts an animation at rest scale.
func NewClickAnimation(dir Direction) *ClickAnimation {
	return &ClickAnimation{Direction: dir, Remaining: config.ClickAnimDuration, Scale: 1}
}

// Progress returns the elapsed fraction in [0, 1].
func (a *ClickAnimation) Progress() float64 {
	return 1 - float64(a.Remaining)/float64(config.ClickAnimDuration)
}

// Update consumes delta and recomputes scale and rotation. Returns true once
// the animation is finished, at which point scale and rotation are back at rest.
func (a *ClickAnimation) Update(delta time.Duration, rng *rand.Rand) bool {
	a.Remaining -= delta
	if a.Remaining <= 0 {
		a.Remaining = 0
		a.Scale, a.Rotation = 1, 0
		return true
	}

	p := a.Progress()
	switch a.Direction {
	case Positive:
		if p < 0.5 {
			a.Scale = 1 + p*2*config.ClickScaleUp
		} else {
			a.Scale = 1 + config.ClickScaleUp - (p-0.5)*2*config.ClickScaleUp
		}
		a.Rotation = 0
	case Negative:
		if p < 0.5 {
			a.Scale = 1 - p*2*config.ClickScaleDown
			a.Rotation = (rng.Float64() - 0.5) * 0.2
		} else {
			a.Scale = 1 - config.ClickScaleDown + (p-0.5)*2*config.ClickScaleDown
			a.Rotation = (rng.Float64() - 0.5) * 0.1
		}
	}
	return false
}
