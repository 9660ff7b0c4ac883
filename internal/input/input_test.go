package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

// feed builds a Stream whose channel already holds data, without a reader goroutine.
func feed(data string) *Stream {
	s := &Stream{ch: make(chan byte, len(data)+1)}
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
	return s
}

func TestReadInputKeys(t *testing.T) {
	in := ReadInput(feed(" l"))
	if !in.Space || !in.Language {
		t.Fatalf("expected space and language, got %+v", in)
	}
	if in.Quit || in.Escape {
		t.Fatalf("unexpected keys set: %+v", in)
	}
}

func TestReadInputParsesSGRClick(t *testing.T) {
	in := ReadInput(feed("\x1b[<0;12;7M\x1b[<0;12;7m\x1b[<35;3;3M"))
	if len(in.Clicks) != 1 {
		t.Fatalf("expected one press, got %+v", in.Clicks)
	}
	if in.Clicks[0] != (Click{Col: 12, Row: 7}) {
		t.Fatalf("click = %+v, want {12 7}", in.Clicks[0])
	}
	if in.Escape {
		t.Fatalf("mouse report must not register as escape")
	}
}

func TestReadInputIgnoresOtherButtons(t *testing.T) {
	in := ReadInput(feed("\x1b[<2;5;5M\x1b[<64;5;5M"))
	if len(in.Clicks) != 0 {
		t.Fatalf("right button and wheel should be ignored, got %+v", in.Clicks)
	}
}

func TestReadInputCarriesSplitSequence(t *testing.T) {
	s := feed("\x1b[<0;4")
	if in := ReadInput(s); len(in.Clicks) != 0 || in.Escape {
		t.Fatalf("incomplete sequence should be held back, got %+v", in)
	}
	for _, b := range []byte(";9M") {
		s.ch <- b
	}
	in := ReadInput(s)
	if len(in.Clicks) != 1 || in.Clicks[0] != (Click{Col: 4, Row: 9}) {
		t.Fatalf("expected completed click {4 9}, got %+v", in.Clicks)
	}
}

func TestKeyHoldExpires(t *testing.T) {
	s := feed(" ")
	if in := ReadInput(s); !in.Space {
		t.Fatalf("space should be held right after the press")
	}
	time.Sleep(2 * keyHoldDuration)
	if in := ReadInput(s); in.Space {
		t.Fatalf("space should be released after the hold duration")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := feed(" ")
	ReadInput(s)
	ResetKeyInput(s)
	if in := ReadInput(s); in.Space {
		t.Fatalf("reset should drop held keys")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if ReadInput(s).Quit {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("closed input should report Quit")
}
