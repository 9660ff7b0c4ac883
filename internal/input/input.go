package input

import (
	"bufio"
	"strconv"
	"strings"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Click is a primary-button press at a 1-based terminal position.
type Click struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit     bool
	Space    bool
	Enter    bool
	Escape   bool
	Language bool // Cycle the interface language
	Clicks   []Click
	Resized  bool
	Pressed  []byte
}

// Active reports whether the player did anything this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0 || len(in.Clicks) > 0
}

// Source delivers one Input per frame.
type Source interface {
	Read() Input
	// Reset forgets held keys so a key that started a screen does not also act on the next one.
	Reset()
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit     time.Time
	space    time.Time
	enter    time.Time
	escape   time.Time
	language time.Time
}

func (s keyState) input(now time.Time) Input {
	return Input{
		Quit:     now.Sub(s.quit) < keyHoldDuration,
		Space:    now.Sub(s.space) < keyHoldDuration,
		Enter:    now.Sub(s.enter) < keyHoldDuration,
		Escape:   now.Sub(s.escape) < keyHoldDuration,
		Language: now.Sub(s.language) < keyHoldDuration,
	}
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried over to the next read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read implements Source.
func (s *Stream) Read() Input {
	return ReadInput(s)
}

// Reset implements Source.
func (s *Stream) Reset() {
	ResetKeyInput(s)
}

// ResetKeyInput clears all held keys.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles SGR mouse reports and accumulates all pressed keys.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.pending
	s.pending = nil
	closed := false

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var clicks []Click
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			end := csiEnd(buf, i+2)
			if end < 0 {
				// Sequence split across reads
				s.pending = append([]byte(nil), buf[i:]...)
				buf = buf[:i]
				break
			}
			if click, ok := parseSGRMouse(buf[i+2 : end+1]); ok {
				clicks = append(clicks, click)
			}
			i = end
			continue
		}

		applyByteToState(&s.state, b, now)
	}

	input := s.state.input(now)
	input.Clicks = clicks
	input.Pressed = buf
	if closed {
		input.Quit = true
	}
	return input
}

// csiEnd returns the index of the final byte of a CSI sequence whose parameters
// start at from, or -1 if the sequence is incomplete.
func csiEnd(buf []byte, from int) int {
	for j := from; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j
		}
	}
	return -1
}

// parseSGRMouse parses the body of "ESC [ < b ; col ; row M" and reports
// primary-button presses. Releases, motion and wheel events are ignored.
func parseSGRMouse(seq []byte) (Click, bool) {
	if len(seq) < 6 || seq[0] != '<' {
		return Click{}, false
	}
	final := seq[len(seq)-1]
	if final != 'M' {
		return Click{}, false
	}
	parts := strings.Split(string(seq[1:len(seq)-1]), ";")
	if len(parts) != 3 {
		return Click{}, false
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Click{}, false
		}
		vals[i] = n
	}
	button := vals[0]
	if button&(32|64) != 0 || button&3 != 0 {
		return Click{}, false
	}
	return Click{Col: vals[1], Row: vals[2]}, true
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case 'l', 'L':
		state.language = now
	}
}
