package game

import (
	"reflect"
	"testing"
	"time"
)

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.Every(time.Second, func() { got = append(got, "a") })
	s.Every(400*time.Millisecond, func() { got = append(got, "b") })
	s.Every(time.Second, func() { got = append(got, "c") })

	s.Advance(2 * time.Second)
	want := []string{"b", "b", "a", "c", "b", "b", "a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fired %v, want %v", got, want)
	}
	if s.Now() != 2*time.Second {
		t.Errorf("Now = %v", s.Now())
	}
}

func TestSchedulerSmallSteps(t *testing.T) {
	s := NewScheduler()
	n := 0
	s.Every(800*time.Millisecond, func() { n++ })
	for i := 0; i < 100; i++ {
		s.Advance(16 * time.Millisecond)
	}
	if n != 2 {
		t.Errorf("fired %d times in 1.6s, want 2", n)
	}
}

func TestSchedulerStopInsideCallback(t *testing.T) {
	s := NewScheduler()
	var a, b int
	var other TimerID
	s.Every(time.Second, func() {
		a++
		s.StopAll()
	})
	other = s.Every(time.Second, func() { b++ })

	s.Advance(5 * time.Second)
	if a != 1 || b != 0 {
		t.Errorf("a=%d b=%d, want 1 and 0", a, b)
	}
	if s.Active() != 0 {
		t.Errorf("%d timers still active", s.Active())
	}
	s.Stop(other)
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler()
	n := 0
	id := s.Every(100*time.Millisecond, func() { n++ })
	s.Advance(250 * time.Millisecond)
	s.Stop(id)
	s.Advance(time.Second)
	if n != 2 {
		t.Errorf("fired %d times, want 2", n)
	}
}
