// Package proxy exposes the worker over HTTP: a caching proxy for app and
// API requests plus a small control surface (skip-waiting, push receipt,
// manual sync trigger).
package proxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/distory/internal/logging"
	"github.com/dmitrijs2005/distory/internal/worker/cache"
	"github.com/dmitrijs2005/distory/internal/worker/push"
	"github.com/dmitrijs2005/distory/internal/worker/syncer"
)

// Server wires the cache manager, push dispatcher and syncer into a chi
// router.
type Server struct {
	manager    *cache.Manager
	dispatcher *push.Dispatcher
	syncer     *syncer.Syncer
	passthru   *http.Client
	log        logging.Logger
}

// NewServer builds the worker HTTP surface.
func NewServer(m *cache.Manager, d *push.Dispatcher, s *syncer.Syncer, log logging.Logger) *Server {
	return &Server{
		manager:    m,
		dispatcher: d,
		syncer:     s,
		passthru:   &http.Client{},
		log:        log,
	}
}

// Router configures and returns the chi router.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))

	r.Get("/healthz", s.health)

	r.Route("/control", func(r chi.Router) {
		r.Post("/skip-waiting", s.skipWaiting)
		r.Post("/push", s.receivePush)
		r.Post("/sync/{tag}", s.triggerSync)
	})

	r.NotFound(s.proxy)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"state": string(s.manager.State())})
}

// skipWaiting forces a waiting manager to activate immediately: the
// one-shot "skip waiting" message from page to worker.
func (s *Server) skipWaiting(w http.ResponseWriter, r *http.Request) {
	if s.manager.State() != cache.StateWaiting {
		w.WriteHeader(http.StatusConflict)
		return
	}

	if err := s.manager.Activate(r.Context(), nil); err != nil {
		s.log.Error(r.Context(), "activation failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// receivePush accepts a raw push message body and dispatches exactly one
// notification for it.
func (s *Server) receivePush(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.dispatcher.HandlePush(r.Context(), raw); err != nil {
		s.log.Error(r.Context(), "push dispatch failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) triggerSync(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	// Detach from the request context; the pass may outlive the request.
	go func() {
		if err := s.syncer.HandleTrigger(context.WithoutCancel(r.Context()), tag); err != nil {
			s.log.Warn(r.Context(), "sync trigger rejected", "tag", tag, "error", err)
		}
	}()
	w.WriteHeader(http.StatusAccepted)
}

// proxy funnels every other request through the cache manager. Excluded
// requests pass straight through with no cache involvement.
func (s *Server) proxy(w http.ResponseWriter, r *http.Request) {
	entry, handled, err := s.manager.Handle(r.Context(), r)
	if err != nil {
		s.log.Warn(r.Context(), "request failed", "url", r.URL.String(), "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if !handled {
		s.passthrough(w, r)
		return
	}

	writeEntry(w, entry)
}

func (s *Server) passthrough(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), r.Method, r.URL.String(), r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Header = r.Header.Clone()

	resp, err := s.passthru.Do(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, vals := range resp.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func writeEntry(w http.ResponseWriter, e *cache.Entry) {
	for k, vals := range e.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}
