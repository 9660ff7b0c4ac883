package server

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kedusha/internal/game"
	"github.com/tomz197/kedusha/internal/leaderboard"
	"github.com/tomz197/kedusha/internal/loop/config"
)

// GameServer is the interface clients use to talk to the lobby.
// Decouples the Client from the concrete Server so a single local player can
// run without one.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	GetSnapshot() *Snapshot
	RecordScore(clientID int, summary game.Summary)
}

// Server is the lobby shared by every SSH session in the process: it counts
// players, keeps the best scores and relays shutdown.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	scores       *leaderboard.Store
	snapshot     atomic.Pointer[Snapshot]
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent
	server   GameServer
}

// ReportScore records a finished game with the lobby.
func (h *ClientHandle) ReportScore(s game.Summary) {
	h.server.RecordScore(h.ID, s)
}

var _ game.ScoreReporter = (*ClientHandle)(nil)

// NewServer creates an empty lobby.
func NewServer(logger *log.Logger) *Server {
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		scores:       leaderboard.NewStore(),
		logger:       logger,
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Shutdown notifies all connected clients and waits for them to disconnect
// (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: SanitizeUsername(username),
		EventsCh: make(chan ClientEvent, 16),
		server:   s,
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	s.publishLocked()
	s.logger.Debug("client registered", "id", handle.ID, "user", handle.Username, "players", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.publishLocked()
}

// GetSnapshot returns the current lobby snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// RecordScore stores a finished game and tells the other clients about it.
func (s *Server) RecordScore(clientID int, summary game.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	id := summary.Player.ID
	if id == "" {
		id = "lobby-" + strconv.Itoa(clientID)
	}
	name := summary.Player.Name
	if name == "" {
		name = handle.Username
	}
	s.scores.Record(leaderboard.UserID(id), name, summary.Score)
	s.publishLocked()

	for otherID, other := range s.clients {
		if otherID == clientID {
			continue
		}
		select {
		case other.EventsCh <- ClientEvent{Type: EventScorePosted, Username: name, Score: summary.Score}:
		default:
		}
	}
}

// Seed loads best scores fetched from a score service so the lobby shows them
// before anyone has played here. Players the lobby already knows are skipped.
func (s *Server) Seed(entries []leaderboard.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, e := range entries {
		if e.UserID == "" {
			continue
		}
		if _, ok := s.scores.Player(e.UserID); ok {
			continue
		}
		s.scores.Record(e.UserID, SanitizeUsername(e.Username), e.BestScore)
		added++
	}
	if added > 0 {
		s.publishLocked()
	}
	s.logger.Debug("lobby seeded", "entries", len(entries), "added", added)
}

// publishLocked rebuilds the snapshot. Must be called with the lock held.
func (s *Server) publishLocked() {
	top := s.scores.Top(config.TopScoreCount)
	entries := make([]TopScoreEntry, len(top))
	for i, e := range top {
		entries[i] = TopScoreEntry{Username: e.Username, Score: e.BestScore}
	}
	s.snapshot.Store(&Snapshot{Players: len(s.clients), TopScores: entries})
}
