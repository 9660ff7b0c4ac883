package client

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/game"
	"github.com/tomz197/kedusha/internal/i18n"
	"github.com/tomz197/kedusha/internal/input"
	"github.com/tomz197/kedusha/internal/loop/config"
	"github.com/tomz197/kedusha/internal/loop/server"
)

// announceDuration is how long another player's score stays in the HUD.
const announceDuration = 4 * time.Second

// Client drives one session for a single terminal: it reads input, ticks the
// session, renders and presents frames.
type Client struct {
	server    server.GameServer
	handle    *server.ClientHandle
	state     *ClientState
	session   *game.Session
	canvas    *draw.Canvas
	presenter draw.Presenter
	source    input.Source
	rng       *rand.Rand // Render-only randomness (glow flicker)
	logger    *log.Logger
	gameURL   string
}

// ClientOptions configures the client.
type ClientOptions struct {
	Username string
	PlayerID string
	Language i18n.Language

	// Reporter receives the summary after the lobby has recorded it.
	Reporter  game.ScoreReporter
	Analytics game.Analytics
	Cues      game.Cues
	Logger    *log.Logger
	Rand      *rand.Rand
	GameURL   string
}

// NewClient registers with gs and creates an idle session.
func NewClient(gs server.GameServer, p draw.Presenter, src input.Source, opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	handle := gs.RegisterClient(opts.Username)
	session := game.NewSession(game.Options{
		Rand:      rand.New(rand.NewSource(rng.Int63())),
		Language:  opts.Language,
		Player:    game.Player{ID: opts.PlayerID, Name: handle.Username},
		Reporter:  game.Reporters{handle, opts.Reporter},
		Analytics: opts.Analytics,
		Cues:      opts.Cues,
	})

	termWidth, termHeight, _ := p.Size()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.CanvasWidth, config.CanvasHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:    gs,
		handle:    handle,
		state:     NewClientState(time.Now()),
		session:   session,
		canvas:    canvas,
		presenter: p,
		source:    src,
		rng:       rng,
		logger:    logger.With("client", handle.ID),
		gameURL:   opts.GameURL,
	}
}

// Session exposes the game session, mainly for tests.
func (c *Client) Session() *game.Session {
	return c.session
}

// Run starts the client loop. Blocks until the player quits, the server
// stops or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	defer c.server.UnregisterClient(c.handle.ID)
	c.presenter.Clear()

	lastTime := time.Now()
	for c.state.Running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.Step(frameStart, delta); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// Step runs one frame: input, server events, resize, update and draw.
func (c *Client) Step(now time.Time, delta time.Duration) error {
	c.state.delta = min(delta, config.MaxFrameDelta)

	c.processInput(now)
	c.processServerEvents()
	c.updateScreen()
	c.update()
	if !c.state.Running {
		return nil
	}
	return c.drawFrame()
}

// processInput reads input and applies it to the session.
func (c *Client) processInput(now time.Time) {
	in := c.source.Read()
	c.state.Input = in

	idle := now.Sub(c.state.lastInput).Seconds()
	switch {
	case in.Active():
		c.state.lastInput = now
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.logger.Info("disconnecting inactive player")
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if in.Resized {
		c.presenter.Clear()
	}
	if c.state.Screen == ScreenShutdown {
		return
	}
	if in.Language {
		c.session.SetLanguage(c.session.Language().Next())
	}

	switch c.session.Phase() {
	case game.Idle:
		if in.Space || in.Enter || len(in.Clicks) > 0 {
			c.source.Reset()
			c.session.Start()
		}
	case game.Playing:
		for _, click := range in.Clicks {
			if x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row); ok {
				c.session.Click(x, y)
			}
		}
	case game.Ended:
		switch {
		case in.Space || in.Enter || len(in.Clicks) > 0:
			c.source.Reset()
			c.session.Replay()
		case in.Escape:
			c.source.Reset()
			c.session.Dismiss()
		}
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventScorePosted:
				c.state.announcement = fmt.Sprintf("%s: %d", event.Username, event.Score)
				c.state.announceTimer = announceDuration
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// update advances the session and the client's own timers.
func (c *Client) update() {
	if c.state.Screen == ScreenShutdown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}
	c.session.Tick(c.state.delta)
	if c.state.announceTimer > 0 {
		c.state.announceTimer -= c.state.delta
		if c.state.announceTimer <= 0 {
			c.state.announcement = ""
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes the presenter clears the terminal to remove residual
// cells outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.presenter.Size()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.presenter.Clear()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits a 3:2 render area into the terminal, capped at the max
// render resolution, and computes the centering offset. A cell is one pixel
// wide and two tall, so 3:2 in pixels is three columns per row.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth, termHeight*3)
	renderHeight = renderWidth / 3
	if renderHeight < 1 {
		renderWidth, renderHeight = max(termWidth, 1), max(termHeight, 1)
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
