package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/distory/internal/client/services"
	"github.com/dmitrijs2005/distory/internal/logging"
)

type fakeSyncService struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSyncService) SyncPending(ctx context.Context) (*services.SyncReport, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &services.SyncReport{Synced: 1}, nil
}

func testLogger() logging.Logger {
	return logging.NewDefault(slog.LevelError)
}

func TestHandleTrigger_RecognizedTagRunsSync(t *testing.T) {
	svc := &fakeSyncService{}
	s := New(svc, nil, testLogger())

	require.NoError(t, s.HandleTrigger(context.Background(), SyncTag))
	assert.EqualValues(t, 1, svc.calls.Load())
}

func TestHandleTrigger_UnknownTag(t *testing.T) {
	svc := &fakeSyncService{}
	s := New(svc, nil, testLogger())

	err := s.HandleTrigger(context.Background(), "sync-profile")
	assert.ErrorIs(t, err, ErrUnknownTag)
	assert.Zero(t, svc.calls.Load())
}

func TestHandleTrigger_SyncFailureIsSwallowed(t *testing.T) {
	svc := &fakeSyncService{err: errors.New("server down")}
	s := New(svc, nil, testLogger())

	assert.NoError(t, s.HandleTrigger(context.Background(), SyncTag))
	assert.EqualValues(t, 1, svc.calls.Load())
}

func TestWatch_SyncsOnOfflineToOnlineTransition(t *testing.T) {
	svc := &fakeSyncService{}

	var online atomic.Bool
	probe := func(ctx context.Context) error {
		if !online.Load() {
			return errors.New("offline")
		}
		return nil
	}

	s := New(svc, probe, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Watch(ctx, 5*time.Millisecond)
		close(done)
	}()

	// Stay offline for a few probes, then come back.
	time.Sleep(25 * time.Millisecond)
	assert.Zero(t, svc.calls.Load())

	online.Store(true)
	assert.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, 5*time.Millisecond,
		"exactly one sync pass per transition")

	// Staying online must not trigger again.
	time.Sleep(25 * time.Millisecond)
	assert.EqualValues(t, 1, svc.calls.Load())

	cancel()
	<-done
}
