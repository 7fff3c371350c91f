package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/patrickmn/go-cache"
	"github.com/urfave/cli/v3"

	"github.com/FlameInTheDark/uwuweather/internal/session"
)

// sessionIdleTTL is how long a user's session stays in memory after its last
// command. Persisted state outlives it.
const sessionIdleTTL = 30 * time.Minute

type App struct {
	s *discordgo.Session

	deps *deps

	mu       sync.Mutex
	sessions *cache.Cache

	handlers map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

func NewApp(d *deps) (*App, error) {
	if d.cfg.Token == "" {
		return nil, errors.New("DISCORD_TOKEN is required to run the bot")
	}
	s, err := discordgo.New("Bot " + d.cfg.Token)
	if err != nil {
		return nil, err
	}

	return &App{
		s:        s,
		deps:     d,
		sessions: cache.New(sessionIdleTTL, 2*sessionIdleTTL),
	}, nil
}

func (a *App) Run() error {
	err := a.s.Open()
	if err != nil {
		return err
	}
	user, err := a.s.User("@me")
	if err != nil {
		return err
	}
	slog.Info("Logged in", slog.String("username", user.Username), slog.String("discriminator", user.Discriminator))
	return nil
}

func (a *App) Close() error {
	return a.s.Close()
}

// userSession returns the cached session for a Discord user, opening one
// backed by the user's state file when needed. Each lookup extends the idle
// expiry.
func (a *App) userSession(userID string) *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if v, ok := a.sessions.Get(userID); ok {
		a.sessions.SetDefault(userID, v)
		return v.(*session.Session)
	}
	file := filepath.Join(a.deps.cfg.StateDir, filepath.Base(userID)+".json")
	s := a.deps.session(file)
	a.sessions.SetDefault(userID, s)
	slog.Debug("Opened user session", slog.String("user", userID), slog.String("state", file))
	return s
}

// requestContext bounds one interaction: a geocoding call plus a forecast call.
func (a *App) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*a.deps.cfg.HTTPTimeout)
}

func botAction(ctx context.Context, c *cli.Command) error {
	d, err := load(c)
	if err != nil {
		return err
	}
	defer d.Close()

	app, err := NewApp(d)
	if err != nil {
		return err
	}
	err = app.Run()
	if err != nil {
		return err
	}
	app.createCommands()
	app.registerHandlers()
	slog.Info("Up and running")

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-signalCh:
	case <-ctx.Done():
	}
	return app.Close()
}
