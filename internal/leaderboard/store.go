package leaderboard

import (
	"cmp"
	"slices"
	"sync"

	"github.com/tomz197/kedusha/internal/loop/config"
)

// Server-side achievement kinds.
const (
	AchievementHighScore      = "high_score"
	AchievementShabbatMaster  = "shabbat_master"
	AchievementFrequentPlayer = "frequent_player"
	AchievementPersonalBest   = "personal_best"
)

type playerScores struct {
	name   string
	scores []int
	best   int
	sum    int
}

// Store keeps every recorded score in memory. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	players map[UserID]*playerScores
	order   []UserID // First-seen order, breaks ties on the leaderboard
	games   int
	best    int
	sum     int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{players: make(map[UserID]*playerScores)}
}

// Record adds a finished game and returns the achievements it unlocked.
func (s *Store) Record(id UserID, name string, score int) []Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		p = &playerScores{}
		s.players[id] = p
		s.order = append(s.order, id)
	}
	if name != "" {
		p.name = name
	}
	previous := p.best
	p.scores = append(p.scores, score)
	p.sum += score
	p.best = max(p.best, score)

	s.games++
	s.sum += score
	s.best = max(s.best, score)

	var out []Achievement
	if score >= config.HighScoreThreshold {
		out = append(out, Achievement{Type: AchievementHighScore, Score: score})
	}
	if score >= config.ShabbatMasterThreshold {
		out = append(out, Achievement{Type: AchievementShabbatMaster, Score: score})
	}
	if len(p.scores) >= config.FrequentPlayerGames {
		out = append(out, Achievement{Type: AchievementFrequentPlayer, GamesPlayed: len(p.scores)})
	}
	if score == p.best {
		out = append(out, Achievement{Type: AchievementPersonalBest, Score: score, PreviousBest: previous})
	}
	return out
}

// Top returns up to limit players by best score, highest first.
func (s *Store) Top(limit int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.entryLocked(id))
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.BestScore, a.BestScore)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Player returns one player's row, unranked.
func (s *Store) Player(id UserID) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.players[id]; !ok {
		return Entry{}, false
	}
	return s.entryLocked(id), true
}

func (s *Store) entryLocked(id UserID) Entry {
	p := s.players[id]
	return Entry{
		UserID:     id,
		Username:   p.name,
		BestScore:  p.best,
		TotalGames: len(p.scores),
		AvgScore:   float64(p.sum) / float64(len(p.scores)),
	}
}

// Stats returns the service-wide totals.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{TotalGames: s.games, TotalPlayers: len(s.players), BestScore: s.best}
	if s.games > 0 {
		st.AverageScore = float64(s.sum) / float64(s.games)
	}
	return st
}
