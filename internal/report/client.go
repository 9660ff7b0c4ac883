// Package report delivers finished games and analytics events to the web
// service. Delivery runs on a background worker so the game loop never waits
// on the network.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kedusha/internal/game"
	"github.com/tomz197/kedusha/internal/leaderboard"
)

const (
	defaultQueueSize = 64
	defaultTimeout   = 5 * time.Second
)

type job struct {
	path string
	body any
}

// Client posts scores and events to a leaderboard service.
type Client struct {
	base   *url.URL
	hc     *http.Client
	logger *log.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan job
	done   chan struct{}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client with its 5s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithQueueSize sets how many deliveries may wait before new ones are dropped.
func WithQueueSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.queue = make(chan job, n)
		}
	}
}

// New starts a client for the service at baseURL.
func New(baseURL string, logger *log.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse score endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("score endpoint %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:   base,
		hc:     &http.Client{Timeout: defaultTimeout},
		logger: logger,
		queue:  make(chan job, defaultQueueSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.run()
	return c, nil
}

// ReportScore queues the final score. Games without a player id are not sent.
func (c *Client) ReportScore(s game.Summary) {
	if s.Player.ID == "" {
		c.logger.Debug("score not reported: anonymous player", "score", s.Score)
		return
	}
	score := s.Score
	c.enqueue("/game/score", leaderboard.ScoreRequest{
		UserID:   leaderboard.UserID(s.Player.ID),
		Username: s.Player.Name,
		Score:    &score,
	})
}

// Track queues an analytics event. Event data is flattened next to the
// common fields.
func (c *Client) Track(e game.Event) {
	payload := make(map[string]any, len(e.Data)+5)
	for k, v := range e.Data {
		payload[k] = v
	}
	payload["event_type"] = e.Type
	payload["user_id"] = e.Player.ID
	payload["username"] = e.Player.Name
	payload["language"] = string(e.Language)
	payload["timestamp"] = e.Time.UTC().Format(time.RFC3339)
	c.enqueue("/api/game-analytics", payload)
}

func (c *Client) enqueue(path string, body any) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.queue <- job{path: path, body: body}:
	default:
		c.logger.Warn("report queue full, dropping", "path", path)
	}
}

func (c *Client) run() {
	defer close(c.done)
	for j := range c.queue {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		if err := c.post(ctx, j.path, j.body); err != nil {
			c.logger.Warn("report delivery failed", "path", j.path, "err", err)
		}
		cancel()
	}
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(path).String(), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %s", resp.Status)
	}
	return nil
}

// Leaderboard fetches the top limit players.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	u := c.base.JoinPath("/game/leaderboard")
	u.RawQuery = url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch leaderboard: status %s", resp.Status)
	}
	var entries []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return entries, nil
}

// Close stops accepting work and waits until queued deliveries finish or ctx
// is done.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var (
	_ game.ScoreReporter = (*Client)(nil)
	_ game.Analytics     = (*Client)(nil)
)
