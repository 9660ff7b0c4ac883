// Package leaderboard is the score service: an in-memory store of finished
// games, server-side achievements, HTTP handlers and a websocket live feed.
package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrBadRequest marks a request the handlers reject with 400.
var ErrBadRequest = errors.New("bad request")

// UserID identifies a player. Clients send it as a JSON string or number.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("user id %s: not an integer", n)
	}
	*id = UserID(n.String())
	return nil
}

// ScoreRequest is the body of POST /game/score.
type ScoreRequest struct {
	UserID   UserID `json:"user_id"`
	Username string `json:"username,omitempty"`
	Score    *int   `json:"score"`
}

// Validate reports missing fields.
func (r ScoreRequest) Validate() error {
	if r.UserID == "" || r.Score == nil {
		return fmt.Errorf("%w: missing user_id or score", ErrBadRequest)
	}
	if *r.Score < 0 {
		return fmt.Errorf("%w: negative score", ErrBadRequest)
	}
	return nil
}

// ScoreResponse answers POST /game/score.
type ScoreResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Achievements []Achievement `json:"achievements,omitempty"`
}

// ShareRequest is the body of POST /game/share.
type ShareRequest struct {
	UserID   UserID `json:"user_id"`
	Score    *int   `json:"score"`
	Language string `json:"language,omitempty"`
}

// ShareResponse answers POST /game/share.
type ShareResponse struct {
	Success   bool   `json:"success"`
	ShareURL  string `json:"share_url"`
	ShareText string `json:"share_text"`
	GameURL   string `json:"game_url"`
	Message   string `json:"message"`
}

// Entry is one leaderboard row.
type Entry struct {
	Rank       int     `json:"rank"`
	UserID     UserID  `json:"user_id"`
	Username   string  `json:"username,omitempty"`
	BestScore  int     `json:"best_score"`
	TotalGames int     `json:"total_games"`
	AvgScore   float64 `json:"avg_score"`
}

// Stats are the service-wide totals.
type Stats struct {
	TotalGames   int     `json:"total_games"`
	TotalPlayers int     `json:"total_players"`
	BestScore    int     `json:"best_score"`
	AverageScore float64 `json:"average_score"`
}

// Achievement is unlocked when a score is recorded.
type Achievement struct {
	Type         string `json:"achievement_type"`
	Score        int    `json:"score,omitempty"`
	GamesPlayed  int    `json:"games_played,omitempty"`
	PreviousBest int    `json:"previous_best,omitempty"`
}

// Feed message types.
const (
	FeedScore       = "score"
	FeedAchievement = "achievement"
	FeedAnalytics   = "analytics"
)

// FeedMessage is pushed to every live feed subscriber.
type FeedMessage struct {
	Type        string         `json:"type"`
	UserID      UserID         `json:"user_id,omitempty"`
	Username    string         `json:"username,omitempty"`
	Score       *int           `json:"score,omitempty"`
	Achievement *Achievement   `json:"achievement,omitempty"`
	Event       map[string]any `json:"event,omitempty"`
}
