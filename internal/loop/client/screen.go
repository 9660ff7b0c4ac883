package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/game"
	"github.com/tomz197/kedusha/internal/i18n"
	"github.com/tomz197/kedusha/internal/loop/config"
	"github.com/tomz197/kedusha/internal/loop/server"
	"github.com/tomz197/kedusha/internal/object"
	"github.com/tomz197/kedusha/internal/render"
)

var (
	textColor   = draw.White
	accentColor = draw.RGB(255, 215, 0)
	dimColor    = draw.RGB(190, 180, 210)
	dangerColor = draw.RGB(255, 99, 99)
	panelColor  = draw.RGBAf(16, 0, 43, 0.75)
)

// drawFrame renders the session and the UI overlay, then presents the canvas.
func (c *Client) drawFrame() error {
	// On screen, phase or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	phase := c.session.Phase()
	if c.state.Screen != c.state.prevScreen || phase != c.state.prevPhase || c.state.isInactive != c.state.wasInactive {
		c.presenter.Clear()
		c.state.prevScreen = c.state.Screen
		c.state.prevPhase = phase
		c.state.wasInactive = c.state.isInactive
	}

	render.Frame(c.canvas, c.session.Elapsed(), c.rng, c.session)
	c.drawUI(c.server.GetSnapshot())
	return c.presenter.Present(c.canvas)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	ui := i18n.UI(c.session.Language())
	centerY := c.canvas.TerminalHeight() / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerY)
		return
	}

	switch c.session.Phase() {
	case game.Idle:
		c.drawStartScreen(ui, centerY, snapshot)
	case game.Playing:
		c.drawPlayingHUD(ui, snapshot)
	case game.Ended:
		c.drawEndScreen(ui, centerY, snapshot)
	}
}

// panelLine writes s centered on a translucent backing so it stays readable
// over the sky.
func (c *Client) panelLine(row int, s string, fg draw.RGBA) {
	col := (c.canvas.TerminalWidth()-draw.TextWidth(s))/2 + 1
	c.canvas.TextBoxAt(col, row, s, fg, panelColor)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int) {
	c.panelLine(centerY-2, "INACTIVITY WARNING", dangerColor)
	msg := fmt.Sprintf(
		"Disconnecting in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.state.lastInput).Seconds()),
	)
	c.panelLine(centerY, msg, textColor)
	c.panelLine(centerY+2, "Press any key to continue", dimColor)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(ui i18n.Strings, centerY int, snapshot *server.Snapshot) {
	top := centerY - 6
	c.panelLine(top, ui.Title, accentColor)
	c.panelLine(top+2, ui.Instruction, textColor)
	c.panelLine(top+3, strings.Join(object.BeneficialGlyphs, " "), textColor)
	c.panelLine(top+5, ui.Avoid, textColor)
	c.panelLine(top+6, strings.Join(object.ForbiddenGlyphs, " "), textColor)

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.panelLine(top+8, ">>  "+ui.PressStart+"  <<", accentColor)
	}
	c.panelLine(top+10, fmt.Sprintf("%s: %s", ui.Language, c.session.Language()), dimColor)
	c.drawTopScores(ui, top+12, snapshot)
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(ui i18n.Strings, snapshot *server.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	scoreText := fmt.Sprintf("%s: %-4d", ui.Score, c.session.Score())
	c.canvas.TextBoxAt(2, 1, scoreText, textColor, panelColor)

	timeText := fmt.Sprintf("%s: %2d", ui.Time, c.session.TimeLeft())
	timeColor := textColor
	if c.session.TimeLeft() <= 10 {
		timeColor = dangerColor
	}
	c.canvas.TextBoxAt((termWidth-draw.TextWidth(timeText))/2+1, 1, timeText, timeColor, panelColor)

	livesText := ui.Lives + ": " + hearts(c.session.Lives())
	c.canvas.TextBoxAt(termWidth-draw.TextWidth(livesText), 1, livesText, dangerColor, panelColor)

	if snapshot.Players > 1 {
		playersText := fmt.Sprintf("%s: %-4d", ui.Players, snapshot.Players)
		c.canvas.TextBoxAt(termWidth-draw.TextWidth(playersText), termHeight, playersText, dimColor, panelColor)
	}
	if c.state.announcement != "" {
		c.canvas.TextBoxAt(2, termHeight, "🏆 "+c.state.announcement, accentColor, panelColor)
	}
}

// hearts renders lives as filled and empty hearts.
func hearts(lives int) string {
	lives = max(0, min(lives, config.InitialLives))
	return strings.Repeat("♥", lives) + strings.Repeat("♡", config.InitialLives-lives)
}

// drawEndScreen draws the final score, the end message and the leaderboard.
func (c *Client) drawEndScreen(ui i18n.Strings, centerY int, snapshot *server.Snapshot) {
	top := centerY - 8
	score := c.session.Score()
	c.panelLine(top, ui.GameOver, accentColor)
	c.panelLine(top+2, fmt.Sprintf("%s: %d", ui.FinalScore, score), textColor)
	c.panelLine(top+3, c.session.EndMessage(), textColor)

	share, _, _ := strings.Cut(i18n.ShareMessage(score, c.session.Language()), "\n")
	c.panelLine(top+5, ui.Share+": "+share, dimColor)
	if c.gameURL != "" {
		c.panelLine(top+6, c.gameURL, dimColor)
	}

	rows := c.drawTopScores(ui, top+8, snapshot)
	if time.Now().UnixMilli()/600%2 == 0 {
		c.panelLine(top+9+rows, ui.Replay, accentColor)
	}
}

// drawTopScores draws the lobby leaderboard and returns the rows used.
func (c *Client) drawTopScores(ui i18n.Strings, row int, snapshot *server.Snapshot) int {
	if len(snapshot.TopScores) == 0 {
		return 0
	}
	c.panelLine(row, ui.TopScores, accentColor)
	for i, e := range snapshot.TopScores {
		name := e.Username
		if name == "" {
			name = "?"
		}
		line := fmt.Sprintf("%d. %-*s %4d", i+1, config.MaxUsernameLength, name, e.Score)
		fg := textColor
		if name == c.handle.Username {
			fg = accentColor
		}
		c.panelLine(row+1+i, line, fg)
	}
	return len(snapshot.TopScores) + 1
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	c.panelLine(centerY-3, "SERVER SHUTTING DOWN", dangerColor)
	c.panelLine(centerY-1, "The server is restarting for maintenance.", textColor)
	c.panelLine(centerY, "Please reconnect in a moment.", textColor)

	remaining := int(c.state.shutdownTimer) + 1
	c.panelLine(centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), textColor)
	c.panelLine(centerY+4, "Press Q to disconnect now", dimColor)
}
