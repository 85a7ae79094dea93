// Package syncer turns connectivity signals into sync passes: a tagged
// trigger or an observed offline-to-online transition flushes pending
// stories to the API.
package syncer

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/distory/internal/client/services"
	"github.com/dmitrijs2005/distory/internal/logging"
)

// SyncTag is the fixed background-sync trigger tag.
const SyncTag = "sync-stories"

// ErrUnknownTag is returned for trigger tags the syncer does not own.
var ErrUnknownTag = errors.New("unknown sync tag")

// Probe checks connectivity; nil means online.
type Probe func(ctx context.Context) error

// Syncer runs sync passes on demand and watches for the network coming
// back.
type Syncer struct {
	svc   services.SyncService
	probe Probe
	log   logging.Logger

	online bool
}

// New builds a Syncer. The online flag starts pessimistic; the first
// successful probe flips it.
func New(svc services.SyncService, probe Probe, log logging.Logger) *Syncer {
	return &Syncer{svc: svc, probe: probe, log: log}
}

// HandleTrigger services a background-sync trigger. Only the story tag is
// recognized. Errors from the pass itself are logged, not returned: a
// passive background operation never interrupts the user.
func (s *Syncer) HandleTrigger(ctx context.Context, tag string) error {
	if tag != SyncTag {
		return ErrUnknownTag
	}

	if _, err := s.svc.SyncPending(ctx); err != nil {
		s.log.Warn(ctx, "sync pass failed", "tag", tag, "error", err)
	}
	return nil
}

// Watch probes connectivity on the given interval and runs a sync pass on
// every offline-to-online transition. It blocks until ctx is done.
func (s *Syncer) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := s.probe(probeCtx)
			cancel()

			if err != nil {
				if s.online {
					s.log.Info(ctx, "connection lost")
				}
				s.online = false
				continue
			}

			wasOffline := !s.online
			s.online = true
			if wasOffline {
				s.log.Info(ctx, "connection restored, flushing pending stories")
				if _, syncErr := s.svc.SyncPending(ctx); syncErr != nil {
					s.log.Warn(ctx, "sync pass failed", "error", syncErr)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
