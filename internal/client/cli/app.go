// Package cli implements the interactive Distory client: browsing and
// submitting stories, bookmarks, and manual sync, online or offline.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/config"
	"github.com/dmitrijs2005/distory/internal/client/services"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/logging"
	"github.com/dmitrijs2005/distory/internal/netx"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config       *config.Config
	authService  services.AuthService
	storyService services.StoryService
	syncService  services.SyncService
	pushService  services.PushService
	store        *store.Store
	log          logging.Logger
	userName     string
	Mode         Mode
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewDefault(slog.LevelInfo)

	st, err := store.Open(ctx, c.DBPath, log)
	if err != nil {
		log.Error(ctx, "error initializing local store", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	as := services.NewAuthService(apiClient, st)
	ss := services.NewStoryService(apiClient, as, st, log)
	sync := services.NewSyncService(apiClient, as, st, log)
	ps := services.NewPushService(apiClient, as, st, c.PushEndpoint, log)

	return &App{
		config:       c,
		authService:  as,
		storyService: ss,
		syncService:  sync,
		pushService:  ps,
		store:        st,
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	// Restore the greeting from the previous session when still logged in.
	if a.isLoggedIn() {
		if name, err := a.store.UserName(ctx); err == nil {
			a.userName = name
		}
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	_, err := a.authService.Token(context.Background())
	return err == nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "mode switched", "mode", mode)
	}
}

// StartOnlineStatusWatcher probes the API endpoint on an interval and
// flips the mode accordingly. On an offline-to-online transition it also
// flushes pending stories, mirroring the worker's sync trigger.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	client := &http.Client{}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := netx.Probe(probeCtx, client, a.config.APIBaseURL+"/stories/guest")
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
				continue
			}

			wasOffline := a.Mode == ModeOffline
			a.setMode(ModeOnline)
			if wasOffline && a.isLoggedIn() {
				if _, err := a.syncService.SyncPending(ctx); err != nil {
					a.log.Warn(ctx, "background sync failed", "error", err)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
