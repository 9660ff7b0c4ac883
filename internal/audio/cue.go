// Package audio names and synthesizes the game's short cues. Playback lives
// in the speaker subpackage.
package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue names a sound the game asks for.
type Cue int

const (
	Collect Cue = iota
	Mistake
	Start
	End
)

func (c Cue) String() string {
	switch c {
	case Collect:
		return "collect"
	case Mistake:
		return "mistake"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// note is one tone inside a cue, starting At after the cue begins.
type note struct {
	Freq     float64
	At       time.Duration
	Duration time.Duration
	Wave     WaveType
}

var cues = map[Cue][]note{
	Collect: {
		{523, 0, 200 * time.Millisecond, WaveSine},                      // C5
		{659, 100 * time.Millisecond, 200 * time.Millisecond, WaveSine}, // E5
	},
	Mistake: {
		{200, 0, 300 * time.Millisecond, WaveSquare},
	},
	Start: {
		{440, 0, 200 * time.Millisecond, WaveSine},                      // A4
		{523, 150 * time.Millisecond, 200 * time.Millisecond, WaveSine}, // C5
		{659, 300 * time.Millisecond, 300 * time.Millisecond, WaveSine}, // E5
	},
	End: {
		{523, 0, 200 * time.Millisecond, WaveSine},                       // C5
		{659, 200 * time.Millisecond, 200 * time.Millisecond, WaveSine},  // E5
		{784, 400 * time.Millisecond, 200 * time.Millisecond, WaveSine},  // G5
		{1047, 600 * time.Millisecond, 400 * time.Millisecond, WaveSine}, // C6
	},
}

// Length returns how long a cue plays.
func Length(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cues[c] {
		d = max(d, n.At+n.Duration)
	}
	return d
}

// Compose builds the streamer for a cue. Unknown cues yield nil.
func Compose(c Cue, rate beep.SampleRate) beep.Streamer {
	notes, ok := cues[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		t := NewTone(n.Freq, n.Duration, n.Wave, rate)
		if n.At > 0 {
			t = beep.Seq(beep.Silence(rate.N(n.At)), t)
		}
		parts = append(parts, t)
	}
	return beep.Mix(parts...)
}
