package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kedusha/internal/i18n"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	maxBody      = 64 << 10
)

// Server serves the score API and the live feed.
type Server struct {
	store   *Store
	hub     *Hub
	logger  *log.Logger
	gameURL string
	now     func() time.Time
}

// NewServer wires a store and hub. gameURL is linked from share messages.
func NewServer(store *Store, hub *Hub, gameURL string, logger *log.Logger) *Server {
	return &Server{store: store, hub: hub, logger: logger, gameURL: gameURL, now: time.Now}
}

// Routes returns the API mux. index, when non-nil, serves GET /.
func (s *Server) Routes(index http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /game/score", s.handleScore)
	mux.HandleFunc("POST /game/share", s.handleShare)
	mux.HandleFunc("GET /game/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /game/stats", s.handleStats)
	mux.HandleFunc("POST /api/game-analytics", s.handleAnalytics)
	mux.Handle("GET /game/feed", s.hub)
	mux.HandleFunc("GET /health", s.handleHealth)
	if index != nil {
		mux.Handle("GET /{$}", index)
	}
	return mux
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, err)
		return
	}

	achievements := s.store.Record(req.UserID, req.Username, *req.Score)
	s.logger.Info("score recorded", "user", req.UserID, "score", *req.Score, "achievements", len(achievements))

	s.hub.Broadcast(FeedMessage{Type: FeedScore, UserID: req.UserID, Username: req.Username, Score: req.Score})
	for i := range achievements {
		s.hub.Broadcast(FeedMessage{Type: FeedAchievement, UserID: req.UserID, Username: req.Username, Achievement: &achievements[i]})
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Success: true, Message: "Score recorded successfully", Achievements: achievements})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if req.UserID == "" || req.Score == nil {
		s.fail(w, fmt.Errorf("%w: missing user_id or score", ErrBadRequest))
		return
	}
	lang, _ := i18n.ParseLanguage(req.Language)
	text := i18n.ShareMessage(*req.Score, lang)
	gameURL := s.gameURL
	if gameURL == "" {
		gameURL = i18n.DefaultGameURL
	}
	s.logger.Info("share requested", "user", req.UserID, "score", *req.Score, "language", lang)
	writeJSON(w, http.StatusOK, ShareResponse{
		Success:   true,
		ShareURL:  i18n.ShareURL(text, gameURL),
		ShareText: text,
		GameURL:   gameURL,
		Message:   "Share URL generated successfully",
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.fail(w, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		limit = min(n, maxLimit)
	}
	writeJSON(w, http.StatusOK, s.store.Top(limit))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id := UserID(r.URL.Query().Get("user_id"))
	if id == "" {
		writeJSON(w, http.StatusOK, s.store.Stats())
		return
	}
	entry, ok := s.store.Player(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "no games recorded"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	var event map[string]any
	if err := decode(r, &event); err != nil {
		s.fail(w, err)
		return
	}
	kind, _ := event["event_type"].(string)
	if kind == "" {
		s.fail(w, fmt.Errorf("%w: missing event_type", ErrBadRequest))
		return
	}
	s.logger.Info("analytics event", "event_type", kind, "user", event["user_id"])
	s.hub.Broadcast(FeedMessage{Type: FeedAnalytics, Event: event})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"service":     "kedusha-web",
		"ready":       true,
		"timestamp":   s.now().Unix(),
		"subscribers": s.hub.Subscribers(),
	})
}

// fail answers 400 for ErrBadRequest and 500 otherwise.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrBadRequest) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func decode(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
