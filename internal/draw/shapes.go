package draw

import (
	"math"

	"github.com/tomz197/kedusha/internal/physics"
)

// FillRect composites col over a logical rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col RGBA) {
	if w <= 0 || h <= 0 || col.A <= 0 {
		return
	}
	x0, y0, x1, y1 := c.pixelBounds(x, y, w, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blendPixel(px, py, col)
		}
	}
}

// FillCircle composites col over a logical disc. Discs smaller than a pixel
// still cover the pixel under their center.
func (c *Canvas) FillCircle(cx, cy, r float64, col RGBA) {
	c.RadialGradient(cx, cy, r, []Stop{{0, col}, {1, col}})
}

// StrokeCircle draws a ring of the given logical width centered on radius r.
// The ring is at least one pixel wide.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col RGBA) {
	if r <= 0 || col.A <= 0 {
		return
	}
	half := math.Max(width/2, 0.5/math.Min(c.scaleX, c.scaleY))
	outer := r + half
	inner := math.Max(r-half, 0)
	x0, y0, x1, y1 := c.pixelBounds(cx-outer, cy-outer, outer*2, outer*2)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			lx, ly := c.toLogical(px, py)
			if physics.PointInCircle(lx, ly, cx, cy, outer) && physics.DistanceSquared(lx, ly, cx, cy) >= inner*inner {
				c.blendPixel(px, py, col)
			}
		}
	}
}

// RadialGradient fills a logical disc with colours sampled from stops by
// distance from the center (0 at the center, 1 at the rim).
func (c *Canvas) RadialGradient(cx, cy, r float64, stops []Stop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	x0, y0, x1, y1 := c.pixelBounds(cx-r, cy-r, r*2, r*2)
	hit := false
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			lx, ly := c.toLogical(px, py)
			d := physics.Distance(lx, ly, cx, cy)
			if d > r {
				continue
			}
			c.blendPixel(px, py, Gradient(stops, d/r))
			hit = true
		}
	}
	if !hit {
		px, py := c.toPixel(cx, cy)
		c.blendPixel(int(px), int(py), stops[0].Color)
	}
}

// VerticalGradient paints the whole canvas top to bottom, ignoring the origin.
func (c *Canvas) VerticalGradient(stops []Stop) {
	for py := 0; py < c.subPixelHeight; py++ {
		col := Gradient(stops, (float64(py)+0.5)/float64(c.subPixelHeight))
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for i := range row {
			row[i] = over(row[i], col)
		}
	}
}

// FillRotatedRect fills a w x h rectangle centered on (cx, cy) and rotated by
// angle radians.
func (c *Canvas) FillRotatedRect(cx, cy, w, h, angle float64, col RGBA) {
	if w <= 0 || h <= 0 || col.A <= 0 {
		return
	}
	reach := math.Hypot(w, h) / 2
	sin, cos := math.Sincos(-angle)
	x0, y0, x1, y1 := c.pixelBounds(cx-reach, cy-reach, reach*2, reach*2)
	hit := false
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			lx, ly := c.toLogical(px, py)
			dx, dy := lx-cx, ly-cy
			rx := dx*cos - dy*sin
			ry := dx*sin + dy*cos
			if math.Abs(rx) <= w/2 && math.Abs(ry) <= h/2 {
				c.blendPixel(px, py, col)
				hit = true
			}
		}
	}
	if !hit {
		px, py := c.toPixel(cx, cy)
		c.blendPixel(int(px), int(py), col)
	}
}
