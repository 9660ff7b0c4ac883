package client

import (
	"time"

	"github.com/tomz197/kedusha/internal/game"
	"github.com/tomz197/kedusha/internal/input"
)

// Screen is what the client shows on top of the session.
type Screen int

const (
	ScreenGame     Screen = iota // Idle, Playing or Ended, as the session says
	ScreenShutdown               // Server is shutting down
)

// ClientState holds per-connection UI state. Game state lives in the session.
type ClientState struct {
	Input         input.Input
	Screen        Screen
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time, clamped
	lastInput     time.Time
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state

	announcement  string        // Latest score posted by another player
	announceTimer time.Duration // Remaining display time

	// Previous frame's screen, to clear the terminal on transitions
	prevScreen  Screen
	prevPhase   game.Phase
	wasInactive bool
}

// NewClientState creates a new initialized client state.
func NewClientState(now time.Time) *ClientState {
	return &ClientState{
		Screen:    ScreenGame,
		Running:   true,
		lastInput: now,
	}
}
