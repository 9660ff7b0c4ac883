// Package speaker plays audio cues through the system sound device. It is the
// only package that needs the platform audio driver; everything else deals in
// audio.Cue values.
package speaker

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/kedusha/internal/audio"
)

// SampleRate is the output rate of the speaker.
const SampleRate = beep.SampleRate(44100)

// Player plays cues through the system speaker. Play never blocks on
// audio output.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewPlayer initializes the speaker. volume is linear in (0, 1].
func NewPlayer(volume float64, logger *log.Logger) (*Player, error) {
	p := &Player{mixer: &beep.Mixer{}, volume: volume, logger: logger}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return p, nil
}

// Play queues a cue. Unknown cues are ignored.
func (p *Player) Play(c audio.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s := audio.Compose(c, SampleRate)
	if s == nil {
		p.logger.Warn("unknown audio cue", "cue", c)
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(s, p.volume))
	speaker.Unlock()
}

// Close silences all playing cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// newVolume wraps s with a linear volume; math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Nop discards every cue. It stands in when audio is disabled or the speaker
// cannot be opened.
type Nop struct{}

func (Nop) Play(audio.Cue) {}
func (Nop) Close()         {}

var (
	_ Output = (*Player)(nil)
	_ Output = Nop{}
)

// Output is implemented by Player and Nop.
type Output interface {
	Play(audio.Cue)
	Close()
}

// Open returns a speaker-backed player when enabled, or Nop when disabled or
// when the speaker fails to initialize. Failures are logged, not returned.
func Open(enabled bool, volume float64, logger *log.Logger) Output {
	if !enabled {
		return Nop{}
	}
	p, err := NewPlayer(volume, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return Nop{}
	}
	return p
}
