package cli

import (
	"bufio"
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/dpavlenko/dectrack/internal/client/api"
	"github.com/dpavlenko/dectrack/internal/client/cache"
	"github.com/dpavlenko/dectrack/internal/client/config"
	"github.com/dpavlenko/dectrack/internal/client/queries"
	"github.com/dpavlenko/dectrack/internal/client/session"
	"github.com/dpavlenko/dectrack/internal/client/state"
	"github.com/dpavlenko/dectrack/internal/client/storage"
	"github.com/dpavlenko/dectrack/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Store
	queries *queries.Queries
	state   *state.Store
	repos   *storage.Repositories
	logger  logging.Logger
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	repos, err := storage.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	tokens := session.NewTokenHolder()
	apiClient := api.NewHTTPClient(c.ServerURL, tokens)

	sess := session.NewStore(apiClient, repos.Metadata, tokens, logger)
	q := queries.New(apiClient, cache.New(logger), c.ListStaleness)

	return &App{
		config:  c,
		api:     apiClient,
		session: sess,
		queries: q,
		state:   state.New(),
		repos:   repos,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.Close()
	defer a.queries.Store().Wait()

	a.restoreSession(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

// restoreSession tries to pick up the previous session from the local
// database. Silence on ErrNoSession; anything else is worth a line.
func (a *App) restoreSession(ctx context.Context) {
	u, err := a.session.Restore(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Printf("could not restore session: %s", err.Error())
		}
		return
	}
	log.Printf("Welcome back, %s", u.Username)
}

// StartOnlineStatusWatcher probes the server on a fixed interval and flips
// Mode accordingly. Runs until ctx is canceled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			_, err := a.api.Health(probeCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
