package server

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/tomz197/kedusha/internal/loop/config"
)

// TopScoreEntry represents a single entry on the lobby leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
}

// Snapshot is an immutable view of the lobby for rendering.
// A new one is published on every change; readers never lock.
type Snapshot struct {
	Players   int
	TopScores []TopScoreEntry // Best score per player, highest first
}

// ClientEvent is sent from the server to one client.
type ClientEvent struct {
	Type     ClientEventType
	Username string // Who scored, for EventScorePosted
	Score    int
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventScorePosted ClientEventType = iota // Another player finished a game
	EventServerShutdown
)

// SanitizeUsername drops control characters and truncates to the display
// width the HUD reserves for names.
func SanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	return runewidth.Truncate(name, config.MaxUsernameLength, "…")
}
