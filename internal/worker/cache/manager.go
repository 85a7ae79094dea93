package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/distory/internal/logging"
)

// timeNow is a test seam.
var timeNow = time.Now

// Fetcher performs the actual network request and converts the response
// into an Entry. Injected so strategies are testable without a live
// server.
type Fetcher func(ctx context.Context, req *http.Request) (*Entry, error)

// NewHTTPFetcher returns a Fetcher over the given http.Client.
func NewHTTPFetcher(client *http.Client) Fetcher {
	return func(ctx context.Context, req *http.Request) (*Entry, error) {
		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &Entry{
			URL:      req.URL.String(),
			Status:   resp.StatusCode,
			Header:   resp.Header.Clone(),
			Body:     body,
			StoredAt: timeNow(),
		}, nil
	}
}

// State tracks the manager's lifecycle, mirroring a worker installation:
// install precaches assets, activation rolls generations over.
type State string

const (
	StateInstalling State = "installing"
	StateWaiting    State = "waiting"
	StateActivating State = "activating"
	StateActive     State = "active"
)

// Manager applies the cache strategies under one Config. One instance per
// deployed version.
type Manager struct {
	cfg   Config
	store Store
	fetch Fetcher
	log   logging.Logger

	mu    sync.Mutex
	state State
}

// NewManager builds a Manager in the installing state.
func NewManager(cfg Config, store Store, fetch Fetcher, log logging.Logger) *Manager {
	return &Manager{cfg: cfg, store: store, fetch: fetch, log: log, state: StateInstalling}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Install precaches the configured static assets into the current
// generation and transitions to waiting. A single asset failure is
// logged and skipped; install never fails because of one — partial
// precaching is acceptable.
func (m *Manager) Install(ctx context.Context) error {
	m.log.Info(ctx, "installing", "generation", m.cfg.Generation, "assets", len(m.cfg.StaticAssets))

	for _, asset := range m.cfg.StaticAssets {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.AppOrigin+asset, nil)
		if err != nil {
			m.log.Warn(ctx, "asset precache skipped", "asset", asset, "error", err)
			continue
		}

		entry, err := m.fetch(ctx, req)
		if err != nil || entry.Status != http.StatusOK {
			m.log.Warn(ctx, "asset precache failed", "asset", asset, "error", err)
			continue
		}

		if err := m.store.Put(ctx, m.cfg.Generation, entry); err != nil {
			m.log.Warn(ctx, "asset precache store failed", "asset", asset, "error", err)
		}
	}

	m.setState(StateWaiting)
	return nil
}

// Activate deletes every generation whose name is neither the current
// static nor API generation, while claim (client takeover) runs
// concurrently. Both must finish before the manager reports active.
func (m *Manager) Activate(ctx context.Context, claim func(context.Context) error) error {
	m.setState(StateActivating)

	done := make(chan error, 1)
	go func() {
		done <- m.deleteStaleGenerations(ctx)
	}()

	var claimErr error
	if claim != nil {
		claimErr = claim(ctx)
	}

	if err := <-done; err != nil {
		return err
	}
	if claimErr != nil {
		return claimErr
	}

	m.setState(StateActive)
	m.log.Info(ctx, "activated", "generation", m.cfg.Generation)
	return nil
}

func (m *Manager) deleteStaleGenerations(ctx context.Context) error {
	gens, err := m.store.Generations(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate generations: %w", err)
	}

	for _, g := range gens {
		if g == m.cfg.Generation || g == m.cfg.APIGeneration {
			continue
		}
		m.log.Info(ctx, "deleting old generation", "generation", g)
		if err := m.store.DeleteGeneration(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

// Handle dispatches a request to the matching strategy. The second return
// value reports whether the request was handled at all; excluded requests
// fall through to default handling untouched.
func (m *Manager) Handle(ctx context.Context, req *http.Request) (*Entry, bool, error) {
	if m.cfg.Excluded(req) {
		return nil, false, nil
	}

	if m.cfg.IsAPI(req.URL) {
		entry, err := m.NetworkFirst(ctx, req)
		return entry, true, err
	}

	entry, err := m.CacheFirst(ctx, req)
	return entry, true, err
}

// CacheFirst serves static assets: the cached copy wins; misses go to the
// network and successful basic responses are stored before returning.
// With no cache and no network, navigation requests get the offline
// fallback document and anything else a synthetic 503.
func (m *Manager) CacheFirst(ctx context.Context, req *http.Request) (*Entry, error) {
	key := req.URL.String()

	cached, err := m.store.Match(ctx, m.cfg.Generation, key)
	if err != nil {
		m.log.Warn(ctx, "cache match failed", "url", key, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	entry, err := m.fetch(ctx, req)
	if err == nil {
		if cacheable(entry, m.cfg.AppOrigin) {
			if putErr := m.store.Put(ctx, m.cfg.Generation, entry); putErr != nil {
				m.log.Warn(ctx, "cache put failed", "url", key, "error", putErr)
			}
		}
		return entry, nil
	}

	m.log.Warn(ctx, "network fetch failed", "url", key, "error", err)

	if IsNavigation(req) {
		if fallback, fbErr := m.store.Match(ctx, m.cfg.Generation, m.cfg.AppOrigin+m.cfg.OfflineURL); fbErr == nil && fallback != nil {
			return fallback, nil
		}
	}

	return synthetic503(key), nil
}

// NetworkFirst serves API reads: a bounded network attempt wins, caching
// the response under the exact URL; on failure the most recent cached
// response for that URL is served, else the error propagates.
func (m *Manager) NetworkFirst(ctx context.Context, req *http.Request) (*Entry, error) {
	key := req.URL.String()

	fetchCtx := ctx
	if m.cfg.NetworkWait > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, m.cfg.NetworkWait)
		defer cancel()
	}

	entry, err := m.fetch(fetchCtx, req)
	if err == nil && entry.Status < http.StatusInternalServerError {
		if putErr := m.store.Put(ctx, m.cfg.APIGeneration, entry); putErr != nil {
			m.log.Warn(ctx, "api cache put failed", "url", key, "error", putErr)
		}
		return entry, nil
	}
	if err == nil {
		err = fmt.Errorf("server error: status %d", entry.Status)
	}

	cached, cacheErr := m.store.Match(ctx, m.cfg.APIGeneration, key)
	if cacheErr != nil {
		m.log.Warn(ctx, "api cache match failed", "url", key, "error", cacheErr)
	}
	if cached != nil {
		m.log.Info(ctx, "serving cached api response", "url", key)
		return cached, nil
	}

	return nil, fmt.Errorf("network-first fetch failed: %w", err)
}

// cacheable mirrors the "HTTP 200, basic type" rule: only successful
// same-origin responses enter the static cache.
func cacheable(e *Entry, appOrigin string) bool {
	if e.Status != http.StatusOK {
		return false
	}
	return strings.HasPrefix(e.URL, appOrigin) || !strings.Contains(e.URL, "://")
}

func synthetic503(url string) *Entry {
	return &Entry{
		URL:      url,
		Status:   http.StatusServiceUnavailable,
		Header:   http.Header{"Content-Type": []string{"text/plain"}},
		Body:     []byte("Offline"),
		StoredAt: timeNow(),
	}
}
