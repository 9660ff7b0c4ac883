package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellSource translates tcell events into per-frame Input.
type TcellSource struct {
	events     chan tcell.Event
	state      keyState
	buttonDown bool
	closed     bool
}

// StartTcellSource spawns a goroutine polling screen for events. The goroutine
// exits when the screen is finalized.
func StartTcellSource(screen tcell.Screen) *TcellSource {
	s := &TcellSource{events: make(chan tcell.Event, 128)}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.events)
				return
			}
			s.events <- ev
		}
	}()
	return s
}

// Read implements Source.
func (s *TcellSource) Read() Input {
	now := time.Now()
	var clicks []Click
	var pressed []byte
	resized := false

drain:
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				break drain
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				pressed = append(pressed, s.applyKey(ev, now)...)
			case *tcell.EventMouse:
				down := ev.Buttons()&tcell.Button1 != 0
				if down && !s.buttonDown {
					x, y := ev.Position()
					clicks = append(clicks, Click{Col: x + 1, Row: y + 1})
				}
				s.buttonDown = down
			case *tcell.EventResize:
				resized = true
			}
		default:
			break drain
		}
	}

	input := s.state.input(now)
	input.Clicks = clicks
	input.Pressed = pressed
	input.Resized = resized
	if s.closed {
		input.Quit = true
	}
	return input
}

// applyKey records a key event and returns the bytes it stands for.
func (s *TcellSource) applyKey(ev *tcell.EventKey, now time.Time) []byte {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		s.state.quit = now
		return []byte{0x03}
	case tcell.KeyEnter:
		s.state.enter = now
		return []byte{'\r'}
	case tcell.KeyEscape:
		s.state.escape = now
		return []byte{'\x1b'}
	case tcell.KeyRune:
		r := ev.Rune()
		if r < 0x80 {
			applyByteToState(&s.state, byte(r), now)
			return []byte{byte(r)}
		}
		return []byte(string(r))
	}
	return []byte{0}
}

// Reset implements Source.
func (s *TcellSource) Reset() {
	s.state = keyState{}
}

var (
	_ Source = (*Stream)(nil)
	_ Source = (*TcellSource)(nil)
)
