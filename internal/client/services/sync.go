package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/logging"
)

// SyncService flushes pending offline stories to the remote API. It is
// invoked by the worker's sync trigger and by the CLI's explicit "sync"
// command.
type SyncService interface {
	// SyncPending submits each pending story for this device individually.
	// Accepted records are deleted; failed ones stay for the next trigger.
	// A single record's failure never aborts the batch.
	SyncPending(ctx context.Context) (*SyncReport, error)
}

// SyncReport summarizes one sync pass.
type SyncReport struct {
	Synced int
	Failed int
}

type syncService struct {
	client api.Client
	auth   AuthService
	store  *store.Store
	log    logging.Logger
}

// NewSyncService constructs a SyncService.
func NewSyncService(client api.Client, auth AuthService, st *store.Store, log logging.Logger) SyncService {
	return &syncService{client: client, auth: auth, store: st, log: log}
}

func (s *syncService) SyncPending(ctx context.Context) (*SyncReport, error) {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.store.GetOfflineStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving pending stories: %w", err)
	}

	report := &SyncReport{}
	for _, p := range list {
		if err := s.client.AddStory(ctx, token, p); err != nil {
			// Left in place; the next trigger retries it.
			s.log.Warn(ctx, "pending story submit failed", "id", p.ID, "error", err)
			report.Failed++
			continue
		}

		if err := s.store.DeleteOfflineStory(ctx, p.ID); err != nil {
			s.log.Error(ctx, "failed to delete synced story", "id", p.ID, "error", err)
			report.Failed++
			continue
		}
		report.Synced++
	}

	if report.Synced > 0 || report.Failed > 0 {
		s.log.Info(ctx, "sync pass finished", "synced", report.Synced, "failed", report.Failed)
	}
	return report, nil
}
