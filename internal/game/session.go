// Package game is the session controller: phases, score, lives, the clock,
// spawning, click resolution and hand-off to collaborators at game end.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/kedusha/internal/audio"
	"github.com/tomz197/kedusha/internal/i18n"
	"github.com/tomz197/kedusha/internal/loop/config"
	"github.com/tomz197/kedusha/internal/object"
)

// Phase is the session state. Exactly one holds at a time.
type Phase int

const (
	Idle Phase = iota
	Playing
	Ended
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Options configures a Session. Zero values select no-op collaborators, the
// default line table, the fallback language and the standard canvas. A line
// table that fails i18n.Validate is replaced by the default.
type Options struct {
	Rand      *rand.Rand
	Language  i18n.Language
	Lines     i18n.Table
	Player    Player
	Reporter  ScoreReporter
	Analytics Analytics
	Cues      Cues
	Now       func() time.Time // Wall clock stamped on events

	// AfterTutorial is reported with GAME_STARTED.
	AfterTutorial bool
}

// Session owns all game state for one player. It is not safe for concurrent
// use; the owner calls Tick, Click and the phase commands from one goroutine.
type Session struct {
	phase     Phase
	score     int
	lives     int
	timeLeft  int
	collected int
	mistakes  int

	items  []*object.Item
	fx     *object.Effects
	guide  *object.Guide
	sched  *Scheduler
	rng    *rand.Rand
	width  float64
	height float64

	elapsed   time.Duration // Since creation, drives ambient animation
	startedAt time.Duration

	lang       i18n.Language
	lines      i18n.Table
	player     Player
	reporter   ScoreReporter
	analytics  Analytics
	cues       Cues
	now        func() time.Time
	tutorial   bool
	endMessage string
	summary    Summary
}

// NewSession creates a session in the Idle phase.
func NewSession(opts Options) *Session {
	s := &Session{
		phase:     Idle,
		lives:     config.InitialLives,
		timeLeft:  config.InitialTimeLeft,
		rng:       opts.Rand,
		width:     config.CanvasWidth,
		height:    config.CanvasHeight,
		lang:      opts.Language,
		lines:     opts.Lines,
		player:    opts.Player,
		reporter:  opts.Reporter,
		analytics: opts.Analytics,
		cues:      opts.Cues,
		now:       opts.Now,
		tutorial:  opts.AfterTutorial,
		guide:     object.NewGuide(),
		sched:     NewScheduler(),
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.lang == "" {
		s.lang = i18n.Fallback
	}
	if i18n.Validate(s.lines) != nil {
		s.lines = i18n.Default
	}
	if s.reporter == nil {
		s.reporter = nopReporter{}
	}
	if s.analytics == nil {
		s.analytics = nopAnalytics{}
	}
	if s.cues == nil {
		s.cues = nopCues{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.fx = object.NewEffects(s.rng)
	return s
}

// Start begins a new game from Idle or Ended. It is a no-op while Playing.
func (s *Session) Start() {
	if s.phase == Playing {
		return
	}
	s.phase = Playing
	s.score = 0
	s.lives = config.InitialLives
	s.timeLeft = config.InitialTimeLeft
	s.collected = 0
	s.mistakes = 0
	s.endMessage = ""
	s.summary = Summary{}
	clear(s.items)
	s.items = s.items[:0]
	s.fx.Clear()
	s.startedAt = s.elapsed

	s.sched.StopAll()
	s.sched.Every(config.CountdownInterval, s.countdown)
	s.sched.Every(config.SpawnInterval, s.spawn)

	s.track(EventGameStarted, map[string]any{"after_tutorial": s.tutorial})
	s.cues.Play(audio.Start)
	s.guide.Speak(s.lines.RandomLine(s.rng, s.lang, i18n.Start), 0)
	s.fx.Sparkles(s.guide.X+30, s.guide.Y)
}

// Replay starts a new game from Ended.
func (s *Session) Replay() {
	if s.phase == Ended {
		s.Start()
	}
}

// Dismiss returns from Ended to Idle.
func (s *Session) Dismiss() {
	if s.phase != Ended {
		return
	}
	s.phase = Idle
	clear(s.items)
	s.items = s.items[:0]
	s.fx.Clear()
	s.guide.Hide()
}

// Tick advances the session by dt of wall-clock time: interval timers first,
// then one frame update. Outside Playing only the ambient clock and the
// mascot's speech timer move.
func (s *Session) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.elapsed += dt
	ctx := object.UpdateContext{Delta: dt, Rand: s.rng}
	if s.phase != Playing {
		s.guide.Update(ctx)
		return
	}

	s.sched.Advance(dt)
	if s.phase != Playing {
		return
	}

	kept := s.items[:0]
	for i, it := range s.items {
		done := it.Update(ctx)
		if it.Exited(s.height) {
			if it.Category == object.Beneficial && !it.Clicked {
				s.miss(it)
				if s.phase != Playing {
					// Keep the remaining items for the end screen.
					kept = append(kept, s.items[i+1:]...)
					break
				}
			}
			continue
		}
		if !done {
			kept = append(kept, it)
		}
	}
	clear(s.items[len(kept):])
	s.items = kept

	s.fx.Update(ctx)
	s.guide.Update(ctx)
}

// miss handles a beneficial item leaving the playfield unclicked.
func (s *Session) miss(it *object.Item) {
	s.loseLife()
	cx, _ := it.Center()
	s.fx.Explosion(cx, s.height-20)
	s.cues.Play(audio.Mistake)
	if s.lives == 0 {
		s.end()
	}
}

// Click resolves a pointer press at logical canvas coordinates. The first
// unclicked item, in spawn order, whose padded box contains the point is
// resolved; at most one item per click. Returns whether an item was hit.
func (s *Session) Click(x, y float64) bool {
	if s.phase != Playing {
		return false
	}
	for _, it := range s.items {
		if it.Clicked || !it.Contains(x, y) {
			continue
		}
		cx, cy := it.Center()
		cat := it.Category
		it.Resolve()
		if cat == object.Beneficial {
			s.score += config.ScoreCollect
			s.collected++
			s.fx.PositiveBurst(cx, cy, s.pick("+2", "Kedusha"))
			s.cues.Play(audio.Collect)
			s.guide.Speak(s.lines.RandomLine(s.rng, s.lang, i18n.Good), 0)
		} else {
			s.loseLife()
			s.score = max(0, s.score-config.ScoreMistake)
			s.mistakes++
			s.fx.NegativeBurst(cx, cy, s.pick("-1", s.lines.Lines(s.lang, i18n.Bad)[0]))
			s.cues.Play(audio.Mistake)
			s.guide.Speak(s.lines.RandomLine(s.rng, s.lang, i18n.Bad), 0)
			if s.lives == 0 {
				s.end()
			}
		}
		return true
	}
	return false
}

func (s *Session) pick(a, b string) string {
	if s.rng.Float64() > 0.5 {
		return a
	}
	return b
}

func (s *Session) loseLife() {
	s.lives = max(0, s.lives-1)
}

// countdown is the 1 Hz timer.
func (s *Session) countdown() {
	s.timeLeft = max(0, s.timeLeft-1)
	if s.timeLeft == 0 {
		s.end()
	}
}

// spawn is the spawner timer: one item with a weighted random category.
func (s *Session) spawn() {
	cat := object.Forbidden
	glyphs := object.ForbiddenGlyphs
	if s.rng.Float64() < config.BeneficialChance {
		cat = object.Beneficial
		glyphs = object.BeneficialGlyphs
	}
	x := s.rng.Float64() * (s.width - config.SpawnRightMargin)
	speed := config.MinFallSpeed + s.rng.Float64()*config.FallSpeedRange
	s.SpawnAt(x, speed, cat, glyphs[s.rng.Intn(len(glyphs))])
}

// SpawnAt adds an item just above the top edge. It is a no-op outside Playing.
func (s *Session) SpawnAt(x, speed float64, cat object.Category, glyph string) *object.Item {
	if s.phase != Playing {
		return nil
	}
	it := object.NewItem(x, speed, cat, glyph)
	s.items = append(s.items, it)
	return it
}

// end moves to Ended: timers stop, effects are dropped, collaborators get
// the summary.
func (s *Session) end() {
	if s.phase != Playing {
		return
	}
	s.phase = Ended
	s.sched.StopAll()
	// The end screen is a still frame: no shake, no half-finished bursts.
	s.fx.Clear()

	s.summary = Summary{
		Player:     s.player,
		Language:   s.lang,
		Score:      s.score,
		Duration:   s.elapsed - s.startedAt,
		Collected:  s.collected,
		Mistakes:   s.mistakes,
		FinalLives: s.lives,
		Finished:   s.now(),
	}
	s.endMessage = s.lines.FormatEndMessage(s.rng, s.score, s.lang)

	s.reporter.ReportScore(s.summary)
	s.track(EventGameCompleted, map[string]any{
		"score":           s.score,
		"duration":        s.summary.Duration.Seconds(),
		"items_collected": s.collected,
		"mistakes":        s.mistakes,
		"final_lives":     s.lives,
		"completed":       true,
	})
	for _, a := range Achievements(s.score, s.collected) {
		s.track(EventAchievement, map[string]any{
			"achievement_type": a.Type,
			a.field():          a.Value,
			"threshold":        a.Threshold,
		})
	}
	s.cues.Play(audio.End)
}

func (s *Session) track(kind string, data map[string]any) {
	s.analytics.Track(Event{
		Type:     kind,
		Player:   s.player,
		Language: s.lang,
		Time:     s.now(),
		Data:     data,
	})
}

// SetLanguage switches the language for lines spoken from now on.
func (s *Session) SetLanguage(lang i18n.Language) {
	s.lang = lang
}

// Accessors.

func (s *Session) Phase() Phase             { return s.phase }
func (s *Session) Score() int               { return s.score }
func (s *Session) Lives() int               { return s.lives }
func (s *Session) TimeLeft() int            { return s.timeLeft }
func (s *Session) Collected() int           { return s.collected }
func (s *Session) Mistakes() int            { return s.mistakes }
func (s *Session) Items() []*object.Item    { return s.items }
func (s *Session) Effects() *object.Effects { return s.fx }
func (s *Session) Guide() *object.Guide     { return s.guide }
func (s *Session) Elapsed() time.Duration   { return s.elapsed }
func (s *Session) Language() i18n.Language  { return s.lang }
func (s *Session) Player() Player           { return s.player }
func (s *Session) Rand() *rand.Rand         { return s.rng }
func (s *Session) Scheduler() *Scheduler    { return s.sched }
func (s *Session) EndMessage() string       { return s.endMessage }
func (s *Session) Summary() Summary         { return s.summary }
func (s *Session) Size() (w, h float64)     { return s.width, s.height }
