package object

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/loop/config"
)

func updateCtx(d time.Duration) UpdateContext {
	return UpdateContext{Delta: d, Rand: rand.New(rand.NewSource(1))}
}

func TestParticlesExpireWithinLifetime(t *testing.T) {
	deltas := [][]time.Duration{
		{16 * time.Millisecond},
		{5 * time.Millisecond, 40 * time.Millisecond},
		{100 * time.Millisecond},
		{time.Millisecond, 33 * time.Millisecond, 7 * time.Millisecond},
	}
	for _, seq := range deltas {
		fx := NewEffects(rand.New(rand.NewSource(2)))
		fx.PositiveBurst(100, 100, "+2")
		fx.NegativeBurst(200, 200, "-1")
		fx.Sparkles(50, 50)
		fx.Explosion(300, 300)

		var elapsed time.Duration
		for i := 0; fx.Len() > 0; i++ {
			d := seq[i%len(seq)]
			fx.Update(updateCtx(d))
			elapsed += d
			if elapsed > time.Second+100*time.Millisecond {
				t.Fatalf("deltas %v: %d effects alive after %v", seq, fx.Len(), elapsed)
			}
		}
	}
}

func TestRingGrowsLinearly(t *testing.T) {
	h := NewHalo(0, 0, 50, time.Second, draw.White)
	h.Update(updateCtx(500 * time.Millisecond))
	if math.Abs(h.Radius-25) > 1e-9 {
		t.Errorf("radius at half life = %v, want 25", h.Radius)
	}
	s := NewShockwave(0, 0, 40, 150*time.Millisecond, draw.RGB(255, 0, 0), draw.RGB(0, 100, 255))
	if got := s.Color(); got.R < got.B {
		t.Errorf("fresh shockwave should use inner colour, got %+v", got)
	}
	s.Update(updateCtx(100 * time.Millisecond))
	if got := s.Color(); got.B < got.R {
		t.Errorf("late shockwave should use outer colour, got %+v", got)
	}
}

func TestGravityAppliesToFlyingParticles(t *testing.T) {
	d := NewDot(0, 0, 0, 0, 3, draw.White, time.Second)
	d.Update(updateCtx(config.ReferenceFrame))
	if d.VY != config.Gravity {
		t.Errorf("VY after one frame = %v, want %v", d.VY, config.Gravity)
	}
	d.Update(updateCtx(config.ReferenceFrame))
	if d.Y != config.Gravity {
		t.Errorf("Y after two frames = %v, want %v", d.Y, config.Gravity)
	}

	f := NewFlash(10, 10, 25, 100*time.Millisecond, draw.White)
	f.Update(updateCtx(50 * time.Millisecond))
	if x, y := f.Position(); x != 10 || y != 10 {
		t.Errorf("flash moved to (%v, %v)", x, y)
	}
}

func TestShakeDecaysAndStops(t *testing.T) {
	fx := NewEffects(rand.New(rand.NewSource(3)))
	fx.Shake(10, 300*time.Millisecond)
	fx.Shake(4, 100*time.Millisecond)
	if fx.ShakeIntensity() != 10 {
		t.Fatalf("weaker shake replaced stronger one: %v", fx.ShakeIntensity())
	}

	fx.Update(updateCtx(config.ReferenceFrame))
	if got := fx.ShakeIntensity(); math.Abs(got-9) > 1e-9 {
		t.Errorf("intensity after one frame = %v, want 9", got)
	}
	fx.Update(updateCtx(300 * time.Millisecond))
	if got := fx.ShakeIntensity(); got != 0 {
		t.Errorf("intensity after timeout = %v, want 0", got)
	}
}

func TestFloatingTextDrift(t *testing.T) {
	ft := NewFloatingText(0, 100, -1, "+2", draw.White, false, 600*time.Millisecond)
	if ft.Update(updateCtx(10 * config.ReferenceFrame)) {
		t.Fatal("text removed early")
	}
	if ft.Y != 90 {
		t.Errorf("Y = %v, want 90", ft.Y)
	}
	if !ft.Update(updateCtx(time.Second)) {
		t.Error("text not removed after its life")
	}
}

func TestClickAnimation(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	pos := NewClickAnimation(Positive)
	pos.Update(config.ClickAnimDuration/2-time.Millisecond, rng)
	if pos.Scale <= 1.15 || pos.Scale > 1.2 {
		t.Errorf("positive scale near peak = %v", pos.Scale)
	}
	if pos.Rotation != 0 {
		t.Errorf("positive rotation = %v, want 0", pos.Rotation)
	}

	neg := NewClickAnimation(Negative)
	neg.Update(config.ClickAnimDuration/4, rng)
	if neg.Scale >= 1 {
		t.Errorf("negative scale = %v, want < 1", neg.Scale)
	}
	if math.Abs(neg.Rotation) > 0.1 {
		t.Errorf("negative rotation = %v out of range", neg.Rotation)
	}

	if !neg.Update(config.ClickAnimDuration, rng) {
		t.Fatal("animation not done after full duration")
	}
	if neg.Scale != 1 || neg.Rotation != 0 {
		t.Errorf("finished animation at scale %v rotation %v", neg.Scale, neg.Rotation)
	}
}

func TestItemFallsAndHitTest(t *testing.T) {
	it := NewItem(100, 5, Beneficial, "🍞")
	if it.Y != config.SpawnY {
		t.Fatalf("spawn y = %v", it.Y)
	}
	it.Update(updateCtx(config.ReferenceFrame))
	if it.Y != -45 {
		t.Errorf("y after one frame = %v, want -45", it.Y)
	}

	tests := []struct {
		x, y float64
		want bool
	}{
		{120, -25, true},
		{86, -59, true},  // Inside the padding
		{84, -25, false}, // Left of the padding
		{155, -25, true},
		{156, -25, false},
	}
	for _, tt := range tests {
		if got := it.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestItemResolveOnce(t *testing.T) {
	it := NewItem(0, 2, Forbidden, "📱")
	if !it.Resolve() {
		t.Fatal("first resolve failed")
	}
	if it.Resolve() {
		t.Error("second resolve succeeded")
	}
	if it.Glyph != BrokenGlyph || it.Anim == nil || it.Anim.Direction != Negative {
		t.Errorf("resolved forbidden item: glyph %q anim %+v", it.Glyph, it.Anim)
	}

	if it.Update(updateCtx(config.ClickAnimDuration / 2)) {
		t.Error("removed before animation finished")
	}
	if !it.Update(updateCtx(config.ClickAnimDuration)) {
		t.Error("not removed after animation finished")
	}
}

func TestItemExited(t *testing.T) {
	it := NewItem(0, 2, Beneficial, "🍷")
	it.Y = config.CanvasHeight + config.ExitMargin
	if it.Exited(config.CanvasHeight) {
		t.Error("exited at the margin")
	}
	it.Y++
	if !it.Exited(config.CanvasHeight) {
		t.Error("not exited past the margin")
	}
}

func TestGuideSpeech(t *testing.T) {
	g := NewGuide()
	g.Speak("Shabbat Shalom!", 0)
	if g.Text() != "Shabbat Shalom!" {
		t.Fatalf("text = %q", g.Text())
	}
	g.Update(updateCtx(config.SpeechDuration - time.Millisecond))
	if !g.Speaking() {
		t.Error("stopped speaking early")
	}
	g.Speak("Mazel tov!", 500*time.Millisecond)
	g.Update(updateCtx(400 * time.Millisecond))
	if g.Text() != "Mazel tov!" {
		t.Errorf("text = %q", g.Text())
	}
	g.Update(updateCtx(100 * time.Millisecond))
	if g.Speaking() || g.Text() != "" {
		t.Error("still speaking after timeout")
	}
}

func TestWrapWords(t *testing.T) {
	got := wrapWords("Not on Shabbat! Even rabbis make mistakes", 16)
	want := []string{"Not on Shabbat!", "Even rabbis make", "mistakes"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDrawDoesNotPanic(t *testing.T) {
	c := draw.NewScaledCanvas(60, 20, config.CanvasWidth, config.CanvasHeight)
	rng := rand.New(rand.NewSource(5))
	fx := NewEffects(rng)
	fx.PositiveBurst(100, 100, "Kedusha")
	fx.NegativeBurst(-20, 500, "-1")
	fx.Explosion(300, 200)
	g := NewGuide()
	g.Speak("A long line that has to wrap over several rows of the bubble", 0)
	it := NewItem(550, 3, Forbidden, "💻")
	it.Resolve()
	it.Update(updateCtx(50 * time.Millisecond))

	ctx := DrawContext{Canvas: c, Elapsed: time.Second, Rand: rng}
	fx.Draw(ctx)
	g.Draw(ctx)
	it.Draw(ctx)
	NewItem(0, 3, Beneficial, "🌟").Draw(ctx)
}
