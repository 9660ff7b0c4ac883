// Package config centralizes all tunable game parameters.
package config

import "time"

// Canvas - the logical drawing surface in pixels.
// Actual rendering scales to fit terminal size.
const (
	CanvasWidth  = 600
	CanvasHeight = 400
)

// Session
const (
	InitialLives      = 3
	InitialTimeLeft   = 45 // Seconds
	CountdownInterval = time.Second
	SpawnInterval     = 800 * time.Millisecond
)

// Scoring
const (
	ScoreCollect = 2
	ScoreMistake = 1
)

// Spawning
const (
	ItemSize         = 40.0
	SpawnY           = -50.0
	SpawnRightMargin = 60.0 // Items spawn with x in [0, CanvasWidth-SpawnRightMargin)
	MinFallSpeed     = 2.0  // Pixels per reference frame
	FallSpeedRange   = 3.0
	BeneficialChance = 0.6 // Fixed category weight, does not scale with difficulty
	ExitMargin       = 50.0
	HitPadding       = 15.0
)

// Motion. Speeds and accelerations are expressed per ReferenceFrame and scaled
// by the measured frame delta.
const (
	ReferenceFrame = 16 * time.Millisecond
	Gravity        = 0.5
	ShakeDecay     = 0.9
	MaxFrameDelta  = 100 * time.Millisecond // Clamp for stalls (suspended terminal, GC)
)

// Click animation
const (
	ClickAnimDuration = 200 * time.Millisecond
	ClickScaleUp      = 0.2
	ClickScaleDown    = 0.2
)

// Mascot
const (
	MascotX        = 20.0
	MascotY        = 100.0
	SpeechDuration = 2 * time.Second
)

// Achievements
const (
	HighScoreThreshold        = 20
	PerfectCollectorThreshold = 15
	ShabbatMasterThreshold    = 25
	FrequentPlayerGames       = 5
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
	TopScoreCount     = 5  // Entries shown on the end screen
)

// Terminal render area. The canvas keeps a 3:2 aspect ratio inside these bounds.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 60
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
