package game

import (
	"time"

	"github.com/tomz197/kedusha/internal/audio"
	"github.com/tomz197/kedusha/internal/i18n"
)

// Player identifies who is playing. Both fields may be empty.
type Player struct {
	ID   string
	Name string
}

// Summary is the result of one play-through.
type Summary struct {
	Player     Player
	Language   i18n.Language
	Score      int
	Duration   time.Duration
	Collected  int
	Mistakes   int
	FinalLives int
	Finished   time.Time
}

// ScoreReporter receives the final summary of every game. Implementations
// must not block; delivery failures are theirs to log.
type ScoreReporter interface {
	ReportScore(Summary)
}

// Reporters hands every summary to each non-nil reporter in order.
type Reporters []ScoreReporter

func (rs Reporters) ReportScore(s Summary) {
	for _, r := range rs {
		if r != nil {
			r.ReportScore(s)
		}
	}
}

// Analytics event types.
const (
	EventGameStarted   = "GAME_STARTED"
	EventGameCompleted = "GAME_COMPLETED"
	EventAchievement   = "GAME_ACHIEVEMENT"
)

// Event is a named analytics event.
type Event struct {
	Type     string
	Player   Player
	Language i18n.Language
	Time     time.Time
	Data     map[string]any
}

// Analytics receives events at phase transitions. Implementations must not block.
type Analytics interface {
	Track(Event)
}

// Cues plays audio cues. Implementations must not block.
type Cues interface {
	Play(audio.Cue)
}

type nopReporter struct{}

func (nopReporter) ReportScore(Summary) {}

type nopAnalytics struct{}

func (nopAnalytics) Track(Event) {}

type nopCues struct{}

func (nopCues) Play(audio.Cue) {}

// Compile-time interface checks.
var (
	_ ScoreReporter = nopReporter{}
	_ ScoreReporter = Reporters(nil)
	_ Analytics     = nopAnalytics{}
	_ Cues          = nopCues{}
)
