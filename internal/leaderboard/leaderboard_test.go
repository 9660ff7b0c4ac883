package leaderboard

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard)
	hub := NewHub(logger)
	srv := NewServer(NewStore(), hub, "https://example.test/game", logger)
	ts := httptest.NewServer(srv.Routes(nil))
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return srv, ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUserIDAcceptsStringsAndNumbers(t *testing.T) {
	cases := map[string]UserID{
		`{"user_id":"abc"}`: "abc",
		`{"user_id":12345}`: "12345",
		`{"user_id":null}`:  "",
	}
	for in, want := range cases {
		var req ScoreRequest
		if err := json.Unmarshal([]byte(in), &req); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if req.UserID != want {
			t.Errorf("%s: got %q, want %q", in, req.UserID, want)
		}
	}
	var req ScoreRequest
	if err := json.Unmarshal([]byte(`{"user_id":1.5}`), &req); err == nil {
		t.Error("fractional user id accepted")
	}
}

func TestStoreAchievements(t *testing.T) {
	s := NewStore()

	got := s.Record("u1", "ann", 5)
	if len(got) != 1 || got[0].Type != AchievementPersonalBest {
		t.Fatalf("first game: %+v", got)
	}

	got = s.Record("u1", "ann", 3)
	if len(got) != 0 {
		t.Fatalf("lower score unlocked %+v", got)
	}

	got = s.Record("u1", "ann", 26)
	types := map[string]Achievement{}
	for _, a := range got {
		types[a.Type] = a
	}
	for _, want := range []string{AchievementHighScore, AchievementShabbatMaster, AchievementPersonalBest} {
		if _, ok := types[want]; !ok {
			t.Errorf("missing %s in %+v", want, got)
		}
	}
	if types[AchievementPersonalBest].PreviousBest != 5 {
		t.Errorf("previous best = %d, want 5", types[AchievementPersonalBest].PreviousBest)
	}

	s.Record("u1", "ann", 1)
	got = s.Record("u1", "ann", 1)
	if len(got) != 1 || got[0].Type != AchievementFrequentPlayer || got[0].GamesPlayed != 5 {
		t.Fatalf("fifth game: %+v", got)
	}
}

func TestStoreTopOrdersAndRanks(t *testing.T) {
	s := NewStore()
	s.Record("a", "", 10)
	s.Record("b", "", 30)
	s.Record("c", "", 10)
	s.Record("a", "", 2)

	top := s.Top(10)
	if len(top) != 3 {
		t.Fatalf("got %d entries", len(top))
	}
	wantIDs := []UserID{"b", "a", "c"}
	for i, e := range top {
		if e.UserID != wantIDs[i] || e.Rank != i+1 {
			t.Errorf("entry %d = %+v, want id %s rank %d", i, e, wantIDs[i], i+1)
		}
	}
	if top[1].TotalGames != 2 || top[1].AvgScore != 6 {
		t.Errorf("a = %+v", top[1])
	}
	if got := s.Top(1); len(got) != 1 || got[0].UserID != "b" {
		t.Errorf("Top(1) = %+v", got)
	}

	st := s.Stats()
	if st.TotalGames != 4 || st.TotalPlayers != 3 || st.BestScore != 30 || st.AverageScore != 13 {
		t.Errorf("stats = %+v", st)
	}
}

func TestScoreEndpoint(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/game/score", `{"user_id":42,"username":"moshe","score":21}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Success || len(out.Achievements) != 2 {
		t.Errorf("response = %+v", out)
	}
	if e, ok := srv.store.Player("42"); !ok || e.BestScore != 21 || e.Username != "moshe" {
		t.Errorf("stored = %+v, %v", e, ok)
	}
}

func TestScoreEndpointRejectsBadInput(t *testing.T) {
	_, ts := newTestServer(t)
	for _, body := range []string{
		`{"score":3}`,
		`{"user_id":"x"}`,
		`{"user_id":"x","score":-1}`,
		`not json`,
	} {
		resp := postJSON(t, ts.URL+"/game/score", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", body, resp.StatusCode)
		}
	}

	resp, err := http.Get(ts.URL + "/game/score")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /game/score: status %d", resp.StatusCode)
	}
}

func TestShareEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/game/share", `{"user_id":"u","score":12,"language":"ru"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out ShareResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.ShareText, "12") {
		t.Errorf("share text %q lacks score", out.ShareText)
	}
	if out.GameURL != "https://example.test/game" {
		t.Errorf("game url = %q", out.GameURL)
	}
	u, err := url.Parse(out.ShareURL)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "t.me" || u.Query().Get("url") != out.GameURL || u.Query().Get("text") != out.ShareText {
		t.Errorf("share url = %s", out.ShareURL)
	}

	resp = postJSON(t, ts.URL+"/game/share", `{"user_id":"u"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing score: status %d", resp.StatusCode)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	srv, ts := newTestServer(t)
	for i, id := range []UserID{"a", "b", "c"} {
		srv.store.Record(id, "", (i+1)*5)
	}

	resp, err := http.Get(ts.URL + "/game/leaderboard?limit=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var top []Entry
	if err := json.NewDecoder(resp.Body).Decode(&top); err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].UserID != "c" || top[0].BestScore != 15 {
		t.Errorf("top = %+v", top)
	}

	for _, q := range []string{"limit=0", "limit=x"} {
		r, err := http.Get(ts.URL + "/game/leaderboard?" + q)
		if err != nil {
			t.Fatal(err)
		}
		r.Body.Close()
		if r.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d", q, r.StatusCode)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.store.Record("a", "ann", 8)

	resp, err := http.Get(ts.URL + "/game/stats?user_id=a")
	if err != nil {
		t.Fatal(err)
	}
	var e Entry
	_ = json.NewDecoder(resp.Body).Decode(&e)
	resp.Body.Close()
	if e.BestScore != 8 || e.Username != "ann" {
		t.Errorf("player stats = %+v", e)
	}

	resp, err = http.Get(ts.URL + "/game/stats?user_id=nobody")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown player: status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/game/stats")
	if err != nil {
		t.Fatal(err)
	}
	var st Stats
	_ = json.NewDecoder(resp.Body).Decode(&st)
	resp.Body.Close()
	if st.TotalGames != 1 || st.TotalPlayers != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/game-analytics", `{"event_type":"GAME_STARTED","user_id":"u"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status %d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/api/game-analytics", `{"user_id":"u"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing event_type: status %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("health = %v", body)
	}
}

func TestIndexHandler(t *testing.T) {
	logger := log.New(io.Discard)
	srv := NewServer(NewStore(), NewHub(logger), "", logger)
	index := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("landing"))
	})
	h := srv.Routes(index)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Body.String() != "landing" {
		t.Errorf("GET / = %q", rec.Body.String())
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /missing = %d", rec.Code)
	}
}

func TestFeedReceivesScoresAndAchievements(t *testing.T) {
	srv, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/feed"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	postJSON(t, ts.URL+"/game/score", `{"user_id":"u","score":4}`)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got []FeedMessage
	for len(got) < 2 {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg FeedMessage
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&msg); err != nil {
			t.Fatal(err)
		}
		got = append(got, msg)
	}
	if got[0].Type != FeedScore || got[0].Score == nil || *got[0].Score != 4 {
		t.Errorf("first message = %+v", got[0])
	}
	if got[1].Type != FeedAchievement || got[1].Achievement.Type != AchievementPersonalBest {
		t.Errorf("second message = %+v", got[1])
	}
}

func TestBroadcastWithoutSubscribers(t *testing.T) {
	hub := NewHub(log.New(io.Discard))
	hub.Broadcast(FeedMessage{Type: FeedScore})
	if hub.Subscribers() != 0 {
		t.Fatal("phantom subscriber")
	}
}
