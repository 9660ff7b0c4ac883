package draw

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/kedusha/internal/physics"
)

// RGBA is a colour with straight (non-premultiplied) alpha in [0, 1].
type RGBA struct {
	colorful.Color
	A float64
}

// RGB returns an opaque colour from 8-bit channels.
func RGB(r, g, b uint8) RGBA {
	return RGBA{Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, A: 1}
}

// RGBAf returns a colour from 8-bit channels and a float alpha, like CSS rgba().
func RGBAf(r, g, b uint8, a float64) RGBA {
	c := RGB(r, g, b)
	c.A = physics.Clamp(a, 0, 1)
	return c
}

// MustHex parses "#RRGGBB". It panics on malformed input and is meant for
// package-level colour tables.
func MustHex(s string) RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("draw: bad colour %q: %v", s, err))
	}
	return RGBA{Color: c, A: 1}
}

// WithAlpha returns c with alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = physics.Clamp(a, 0, 1)
	return c
}

// Fade scales alpha by f.
func (c RGBA) Fade(f float64) RGBA {
	return c.WithAlpha(c.A * f)
}

// over composites src over an opaque dst.
func over(dst colorful.Color, src RGBA) colorful.Color {
	switch {
	case src.A >= 1:
		return src.Color
	case src.A <= 0:
		return dst
	}
	return dst.BlendRgb(src.Color, src.A)
}

// rgb8 quantizes a colour for terminal output.
func rgb8(c colorful.Color) [3]uint8 {
	r, g, b := c.Clamped().RGB255()
	return [3]uint8{r, g, b}
}

// Common colours.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Transparent = RGBA{}
)

// Stop is a gradient colour stop at Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  RGBA
}

// Gradient samples a piecewise-linear gradient at t. Stops must be sorted by offset.
func Gradient(stops []Stop, t float64) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return RGBA{
			Color: a.Color.Color.BlendRgb(b.Color.Color, f),
			A:     physics.Lerp(a.Color.A, b.Color.A, f),
		}
	}
	return stops[len(stops)-1].Color
}
