package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// Envelope shape: a short linear attack up to peakGain, then an exponential
// fall to floorGain at the end of the tone.
const (
	attack    = 10 * time.Millisecond
	peakGain  = 0.1
	floorGain = 0.001
)

// tone is an oscillator with its envelope applied.
type tone struct {
	freq     float64
	phase    float64
	wave     WaveType
	rate     beep.SampleRate
	position int
	total    int
	attack   int
}

// NewTone creates a finite enveloped tone.
func NewTone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:   freq,
		wave:   wave,
		rate:   rate,
		total:  rate.N(duration),
		attack: rate.N(attack),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		}
		val *= t.gain()

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

// gain is the envelope at the current position.
func (t *tone) gain() float64 {
	if t.position < t.attack {
		return peakGain * float64(t.position) / float64(t.attack)
	}
	decay := t.total - t.attack
	if decay <= 0 {
		return peakGain
	}
	f := float64(t.position-t.attack) / float64(decay)
	return peakGain * math.Pow(floorGain/peakGain, f)
}

func (t *tone) Err() error { return nil }
