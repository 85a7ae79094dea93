package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/dmitrijs2005/distory/internal/buildinfo"
	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/services"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/logging"
	"github.com/dmitrijs2005/distory/internal/netx"
	"github.com/dmitrijs2005/distory/internal/worker/cache"
	"github.com/dmitrijs2005/distory/internal/worker/config"
	"github.com/dmitrijs2005/distory/internal/worker/proxy"
	"github.com/dmitrijs2005/distory/internal/worker/push"
	"github.com/dmitrijs2005/distory/internal/worker/syncer"

	_ "modernc.org/sqlite"
)

// apiOrigin strips the path from the configured API base URL.
func apiOrigin(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	return u.Scheme + "://" + u.Host
}

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewProduction()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer logger.Sync()

	st, err := store.Open(ctx, cfg.DBPath, logger)
	if err != nil {
		logger.Error(ctx, "error initializing local store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.NetworkWait)
	auth := services.NewAuthService(apiClient, st)
	syncSvc := services.NewSyncService(apiClient, auth, st, logger)

	probeClient := &http.Client{}
	probe := func(ctx context.Context) error {
		return netx.Probe(ctx, probeClient, cfg.APIBaseURL+"/stories/guest")
	}
	sy := syncer.New(syncSvc, probe, logger)
	go sy.Watch(ctx, cfg.OnlineCheckInterval)

	manager := cache.NewManager(cache.Config{
		Generation:       cfg.Generation,
		APIGeneration:    cfg.Generation + "-api",
		StaticAssets:     cfg.StaticAssets,
		OfflineURL:       cfg.OfflineURL,
		AppOrigin:        cfg.AppOrigin,
		APIOrigin:        apiOrigin(cfg.APIBaseURL),
		UncacheableHosts: cfg.UncacheableHosts,
		NetworkWait:      cfg.NetworkWait,
	}, cache.NewSQLiteStore(st.DB()), cache.NewHTTPFetcher(&http.Client{}), logger)

	if err := manager.Install(ctx); err != nil {
		logger.Error(ctx, "install failed", "error", err)
		os.Exit(1)
	}
	if err := manager.Activate(ctx, nil); err != nil {
		logger.Error(ctx, "activation failed", "error", err)
		os.Exit(1)
	}

	dispatcher := push.NewDispatcher(
		cfg.AppOrigin,
		cfg.AppOrigin+"/",
		push.DefaultPayload(cfg.AppOrigin+"/images/icon-192.png"),
		push.NewDesktopNotifier(),
		push.NewMemoryRegistry(push.XDGOpen),
		logger,
	)

	srv := proxy.NewServer(manager, dispatcher, sy, logger)

	logger.Info(ctx, "worker listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
