package game

import "time"

// TimerID identifies a repeating callback registered with a Scheduler.
type TimerID int

type timer struct {
	id       TimerID
	interval time.Duration
	next     time.Duration
	fn       func()
}

// Scheduler runs repeating callbacks on a virtual clock advanced by the
// owner. Callbacks run on the caller's goroutine inside Advance, in due-time
// order; timers due at the same instant fire in registration order.
type Scheduler struct {
	now    time.Duration
	timers []*timer
	nextID TimerID
}

// NewScheduler creates a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every registers fn to run every interval, first at Now()+interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		panic("game: non-positive timer interval")
	}
	s.nextID++
	s.timers = append(s.timers, &timer{id: s.nextID, interval: interval, next: s.now + interval, fn: fn})
	return s.nextID
}

// Stop cancels a timer. Stopping an unknown or already stopped timer is a no-op.
func (s *Scheduler) Stop(id TimerID) {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// StopAll cancels every timer. Ticks already due in the current Advance do
// not fire.
func (s *Scheduler) StopAll() {
	clear(s.timers)
	s.timers = s.timers[:0]
}

// Active returns the number of registered timers.
func (s *Scheduler) Active() int {
	return len(s.timers)
}

// Advance moves the clock forward by d, firing every tick that falls due.
// A callback may register or stop timers, including its own.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.due(target)
		if t == nil {
			break
		}
		s.now = t.next
		t.next += t.interval
		t.fn()
	}
	s.now = target
}

// due returns the earliest timer due at or before target.
func (s *Scheduler) due(target time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.next <= target && (best == nil || t.next < best.next) {
			best = t
		}
	}
	return best
}
