package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/kedusha/internal/audio/speaker"
	"github.com/tomz197/kedusha/internal/config"
	"github.com/tomz197/kedusha/internal/draw"
	"github.com/tomz197/kedusha/internal/i18n"
	"github.com/tomz197/kedusha/internal/input"
	"github.com/tomz197/kedusha/internal/logging"
	"github.com/tomz197/kedusha/internal/loop/client"
	loopconfig "github.com/tomz197/kedusha/internal/loop/config"
	"github.com/tomz197/kedusha/internal/loop/server"
	"github.com/tomz197/kedusha/internal/report"
	"golang.org/x/term"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The game owns the screen, so logs go to LOG_FILE or nowhere.
	out, closeLog, err := logging.Output(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := logging.New(out, "game")

	if err := run(logger); err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	presenter, source, err := openTerminal(config.GetEnv("GAME_BACKEND", "tcell"))
	if err != nil {
		return err
	}
	defer presenter.Close()

	lang, ok := i18n.ParseLanguage(config.GetEnv("GAME_LANGUAGE", string(i18n.Fallback)))
	if !ok {
		logger.Warn("unknown language, using fallback", "language", lang)
	}

	volume := float64(max(0, min(config.GetEnvInt("GAME_VOLUME", 80), 100))) / 100
	cues := speaker.Open(config.GetEnvBool("GAME_AUDIO", true), volume, logger)
	defer cues.Close()

	opts := client.ClientOptions{
		Username: config.GetEnv("GAME_USERNAME", os.Getenv("USER")),
		PlayerID: config.GetEnv("GAME_USER_ID", ""),
		Language: lang,
		Cues:     cues,
		Logger:   logger,
		GameURL:  config.GetEnv("GAME_URL", i18n.DefaultGameURL),
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A single local player still gets a lobby: it keeps the top scores
	// across replays.
	lobby := server.NewServer(logger)

	if endpoint := config.GetEnv("SCORE_ENDPOINT", ""); endpoint != "" {
		rc, err := report.New(endpoint, logger)
		if err != nil {
			logger.Warn("score reporting disabled", "err", err)
		} else {
			defer closeReporter(rc, logger)
			opts.Reporter = rc
			opts.Analytics = rc
			go seedLobby(ctx, lobby, rc, logger)
		}
	}

	c := client.NewClient(lobby, presenter, source, opts)
	logger.Info("game started", "backend", config.GetEnv("GAME_BACKEND", "tcell"), "language", lang)
	return c.Run(ctx)
}

// openTerminal sets up the requested backend.
func openTerminal(backend string) (draw.Presenter, input.Source, error) {
	switch backend {
	case "tcell":
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, nil, fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, nil, fmt.Errorf("init screen: %w", err)
		}
		screen.EnableMouse(tcell.MouseButtonEvents)
		screen.HideCursor()
		return draw.NewTcellPresenter(screen), input.StartTcellSource(screen), nil
	case "ansi":
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return nil, nil, fmt.Errorf("enable raw mode: %w", err)
		}
		p := draw.NewANSIPresenter(os.Stdout, nil)
		return &rawPresenter{ANSIPresenter: p, fd: fd, state: oldState}, input.StartStream(bufio.NewReader(os.Stdin)), nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want tcell or ansi)", backend)
	}
}

// rawPresenter restores the terminal mode after the ANSI presenter closes.
type rawPresenter struct {
	*draw.ANSIPresenter
	fd    int
	state *term.State
}

func (p *rawPresenter) Close() error {
	err := p.ANSIPresenter.Close()
	if rerr := term.Restore(p.fd, p.state); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// seedLobby shows the service's top scores on the start and end screens.
func seedLobby(ctx context.Context, lobby *server.Server, rc *report.Client, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	entries, err := rc.Leaderboard(ctx, loopconfig.TopScoreCount)
	if err != nil {
		logger.Warn("leaderboard unavailable", "err", err)
		return
	}
	lobby.Seed(entries)
}

func closeReporter(rc *report.Client, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Close(ctx); err != nil {
		logger.Warn("pending reports dropped", "err", err)
	}
}
