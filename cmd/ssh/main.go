package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/charmbracelet/wish/recover"
	"github.com/tomz197/kedusha/internal/config"
	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/game"
	"github.com/tomz197/kedusha/internal/i18n"
	"github.com/tomz197/kedusha/internal/input"
	internallog "github.com/tomz197/kedusha/internal/logging"
	"github.com/tomz197/kedusha/internal/loop/client"
	"github.com/tomz197/kedusha/internal/loop/server"
	"github.com/tomz197/kedusha/internal/report"
	gossh "golang.org/x/crypto/ssh"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// app holds what every SSH session shares.
type app struct {
	lobby     *server.Server
	reporter  game.ScoreReporter
	analytics game.Analytics
	language  i18n.Language
	gameURL   string
	logger    *log.Logger
}

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := internallog.New(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	lang, _ := i18n.ParseLanguage(config.GetEnv("GAME_LANGUAGE", string(i18n.Fallback)))
	a := &app{
		lobby:    server.NewServer(logger.WithPrefix("lobby")),
		language: lang,
		gameURL:  config.GetEnv("GAME_URL", i18n.DefaultGameURL),
		logger:   logger,
	}

	var rc *report.Client
	if endpoint := config.GetEnv("SCORE_ENDPOINT", ""); endpoint != "" {
		var err error
		rc, err = report.New(endpoint, logger.WithPrefix("report"))
		if err != nil {
			logger.Warn("score reporting disabled", "err", err)
		} else {
			a.reporter = rc
			a.analytics = rc
		}
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			recover.MiddlewareWithLogger(logger, a.gameMiddleware),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for clicks
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	a.lobby.Shutdown(config.GetEnvDuration("SSH_SHUTDOWN_TIMEOUT", 15*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if rc != nil {
		if err := rc.Close(ctx); err != nil {
			logger.Warn("pending reports dropped", "err", err)
		}
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("user", sess.User(), "remote", sess.RemoteAddr())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		presenter := draw.NewANSIPresenter(sess, sizeTracker.getSize)
		defer presenter.Close()

		c := client.NewClient(a.lobby, presenter, input.StartStream(bufio.NewReader(sess)), client.ClientOptions{
			Username:  sess.User(),
			PlayerID:  playerID(sess.User(), sess.PublicKey()),
			Language:  sessionLanguage(sess.Environ(), a.language),
			Reporter:  a.reporter,
			Analytics: a.analytics,
			Logger:    logger,
			GameURL:   a.gameURL,
		})
		if err := c.Run(sess.Context()); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// playerID identifies a player across sessions: by key fingerprint when the
// client authenticated with one, otherwise by login name.
func playerID(user string, key ssh.PublicKey) string {
	if key != nil {
		return gossh.FingerprintSHA256(key)
	}
	return "ssh:" + user
}

// sessionLanguage picks the language from GAME_LANGUAGE or LANG as sent by
// the client (ssh -o SendEnv), falling back to the server default.
func sessionLanguage(environ []string, fallback i18n.Language) i18n.Language {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	if lang, ok := i18n.ParseLanguage(vars["GAME_LANGUAGE"]); ok {
		return lang
	}
	// LANG looks like ru_RU.UTF-8
	if code, _, _ := strings.Cut(vars["LANG"], "_"); code != "" {
		if lang, ok := i18n.ParseLanguage(code); ok {
			return lang
		}
	}
	return fallback
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
