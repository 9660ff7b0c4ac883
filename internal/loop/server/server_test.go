package server

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/kedusha/internal/game"
	"github.com/tomz197/kedusha/internal/leaderboard"
	"github.com/tomz197/kedusha/internal/loop/config"
)

func newTestServer() *Server {
	return NewServer(log.New(io.Discard))
}

func TestRegisterAndUnregister(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("ann")
	b := s.RegisterClient("ben")
	if a.ID == b.ID {
		t.Fatal("duplicate client id")
	}
	if got := s.GetSnapshot().Players; got != 2 {
		t.Fatalf("players = %d, want 2", got)
	}

	s.UnregisterClient(a.ID)
	if got := s.GetSnapshot().Players; got != 1 {
		t.Fatalf("players = %d, want 1", got)
	}
	if _, ok := <-a.EventsCh; ok {
		t.Fatal("events channel still open after unregister")
	}
	s.UnregisterClient(a.ID) // second call is a no-op
}

func TestRecordScoreUpdatesTopScoresAndNotifiesOthers(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("ann")
	b := s.RegisterClient("ben")

	a.ReportScore(game.Summary{Score: 12})
	b.ReportScore(game.Summary{Player: game.Player{ID: "42", Name: "Benjamin"}, Score: 30})
	a.ReportScore(game.Summary{Score: 4})

	top := s.GetSnapshot().TopScores
	if len(top) != 2 {
		t.Fatalf("top = %+v", top)
	}
	if top[0].Username != "Benjamin" || top[0].Score != 30 {
		t.Errorf("first = %+v", top[0])
	}
	if top[1].Username != "ann" || top[1].Score != 12 {
		t.Errorf("second = %+v, best score should be kept", top[1])
	}

	select {
	case ev := <-b.EventsCh:
		if ev.Type != EventScorePosted || ev.Username != "ann" || ev.Score != 12 {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("ben was not told about ann's score")
	}
	select {
	case ev := <-a.EventsCh:
		if ev.Username != "Benjamin" {
			t.Errorf("ann got %+v", ev)
		}
	default:
		t.Fatal("ann was not told about ben's score")
	}
}

func TestTopScoresAreCapped(t *testing.T) {
	s := newTestServer()
	for i := range config.TopScoreCount + 3 {
		h := s.RegisterClient("p")
		h.ReportScore(game.Summary{Score: i})
	}
	top := s.GetSnapshot().TopScores
	if len(top) != config.TopScoreCount {
		t.Fatalf("len = %d, want %d", len(top), config.TopScoreCount)
	}
	if top[0].Score != config.TopScoreCount+2 {
		t.Errorf("best = %d", top[0].Score)
	}
}

func TestRecordScoreForUnknownClient(t *testing.T) {
	s := newTestServer()
	s.RecordScore(99, game.Summary{Score: 5})
	if len(s.GetSnapshot().TopScores) != 0 {
		t.Fatal("score recorded for unknown client")
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := newTestServer()
	h := s.RegisterClient("ann")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) > 2*time.Second {
		t.Fatal("Shutdown did not return once clients left")
	}
	if s.GetSnapshot().Players != 0 {
		t.Fatal("client still registered")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := newTestServer()
	s.RegisterClient("stuck")
	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if time.Since(start) < 300*time.Millisecond {
		t.Fatal("Shutdown returned before its timeout")
	}
}

func TestSanitizeUsername(t *testing.T) {
	cases := map[string]string{
		"  ann  ":               "ann",
		"a\x1b[31mb":            "a[31mb",
		"":                      "",
		strings.Repeat("x", 40): strings.Repeat("x", config.MaxUsernameLength-1) + "…",
	}
	for in, want := range cases {
		if got := SanitizeUsername(in); got != want {
			t.Errorf("SanitizeUsername(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSeedFromScoreService(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("ann")
	a.ReportScore(game.Summary{Player: game.Player{ID: "7", Name: "ann"}, Score: 10})

	s.Seed([]leaderboard.Entry{
		{UserID: "9", Username: "dov", BestScore: 24},
		{UserID: "7", Username: "ann", BestScore: 40},
		{UserID: "", Username: "nobody", BestScore: 99},
	})

	top := s.GetSnapshot().TopScores
	if len(top) != 2 {
		t.Fatalf("top = %+v", top)
	}
	if top[0].Username != "dov" || top[0].Score != 24 {
		t.Errorf("first = %+v", top[0])
	}
	if top[1].Username != "ann" || top[1].Score != 10 {
		t.Errorf("second = %+v, a known player must keep the local score", top[1])
	}
}
