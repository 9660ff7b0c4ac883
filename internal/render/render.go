// Package render draws the playfield. Everything here is a function of the
// elapsed time and the scene passed in; nothing mutates game state.
package render

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/object"
	"github.com/tomz197/kedusha/internal/physics"
)

// Scene is the read-only view of a session the renderer needs.
type Scene interface {
	Items() []*object.Item
	Effects() *object.Effects
	Guide() *object.Guide
}

var (
	sky = []draw.Stop{
		{Offset: 0, Color: draw.MustHex("#FF6B47")},
		{Offset: 0.3, Color: draw.MustHex("#FF8566")},
		{Offset: 0.6, Color: draw.MustHex("#9D4EDD")},
		{Offset: 0.8, Color: draw.MustHex("#3C096C")},
		{Offset: 1, Color: draw.MustHex("#10002B")},
	}
	buildingColor = draw.MustHex("#1A0033")
	windowColor   = draw.MustHex("#FFD700")
	houseColor    = draw.MustHex("#0D0022")
	roofColor     = draw.MustHex("#2A0040")
	houseLight    = draw.MustHex("#FFA500")
	starColor     = draw.White
)

// Parallax layers.
const (
	cityRate      = 0.02 // Pixels per millisecond
	buildingRate  = 0.3  // Fraction of the city offset applied to the back layer
	buildings     = 8
	buildingGap   = 80.0
	buildingWidth = 60.0
	houses        = 6
	houseGap      = 120.0
	houseWidth    = 100.0
	stars         = 30
	windowLitOdds = 0.3
)

// Frame draws one full frame: background, items, effects, then the mascot.
func Frame(c *draw.Canvas, elapsed time.Duration, rng *rand.Rand, s Scene) {
	c.Clear()
	Background(c, elapsed)

	ctx := object.DrawContext{Canvas: c, Elapsed: elapsed, Rand: rng}
	for _, it := range s.Items() {
		it.Draw(ctx)
	}
	s.Effects().Draw(ctx)
	s.Guide().Draw(ctx)
}

// Background draws the dusk sky, two parallax silhouette layers and the star field.
func Background(c *draw.Canvas, elapsed time.Duration) {
	w, h := c.LogicalWidth(), c.LogicalHeight()
	t := float64(elapsed) / float64(time.Millisecond)

	c.VerticalGradient(sky)

	offset := math.Mod(t*cityRate, w)

	for i := 0; i < buildings; i++ {
		x := physics.Wrap(float64(i)*buildingGap-offset*buildingRate, w+buildingGap)
		bh := 60 + math.Sin(float64(i))*20
		c.FillRect(x, h-bh, buildingWidth, bh, buildingColor)
		for col := 0; col < 3; col++ {
			for row := 0; row < 4; row++ {
				if windowLit(i, col, row) {
					c.FillRect(x+10+float64(col)*15, h-bh+10+float64(row)*12, 8, 8, windowColor)
				}
			}
		}
	}

	for i := 0; i < houses; i++ {
		x := physics.Wrap(float64(i)*houseGap-offset, w+houseGap)
		hh := 80 + math.Cos(float64(i))*15
		c.FillRect(x, h-hh, houseWidth, hh, houseColor)
		c.FillRect(x-10, h-hh, houseWidth+20, 15, roofColor)
		c.FillRect(x+20, h-hh+20, 12, 12, houseLight)
		c.FillRect(x+60, h-hh+30, 12, 12, houseLight)
	}

	for i := 0; i < stars; i++ {
		if !Twinkling(elapsed, i) {
			continue
		}
		sx := math.Mod(float64(i)*67, w)
		sy := math.Mod(float64(i)*43, h*0.4)
		c.FillRect(sx, sy, 2, 2, starColor)
	}
}

// Twinkling reports whether star i is lit at elapsed.
func Twinkling(elapsed time.Duration, i int) bool {
	t := float64(elapsed) / float64(time.Millisecond)
	return math.Sin(t*0.005+float64(i)) > 0.8
}

// windowLit is a fixed hash of the window's grid position, so the lit pattern
// moves with its building instead of flickering.
func windowLit(building, col, row int) bool {
	n := uint32(building*73856093) ^ uint32(col*19349663) ^ uint32(row*83492791)
	n ^= n >> 13
	n *= 0x5bd1e995
	n ^= n >> 15
	return float64(n%1000)/1000 > windowLitOdds
}
