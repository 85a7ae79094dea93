package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/cryptox"
	"github.com/dmitrijs2005/distory/internal/logging"
)

// ErrNotSubscribed is returned when unsubscribing without a stored
// subscription.
var ErrNotSubscribed = errors.New("not subscribed to notifications")

// PushService manages this installation's push subscription: register the
// worker's push endpoint with the server and keep the subscription in the
// local store so it survives restarts.
type PushService interface {
	// Subscribe registers a subscription for the configured endpoint.
	// Re-subscribing while one exists replaces it on the server.
	Subscribe(ctx context.Context) error
	// Unsubscribe removes the stored subscription from the server and
	// the local store.
	Unsubscribe(ctx context.Context) error
	// Subscribed reports whether a subscription is stored locally.
	Subscribed(ctx context.Context) bool
}

type pushService struct {
	client   api.Client
	auth     AuthService
	store    *store.Store
	endpoint string
	log      logging.Logger
}

// NewPushService constructs a PushService. endpoint is the URL the push
// service delivers messages to, normally the worker's control surface.
func NewPushService(client api.Client, auth AuthService, st *store.Store, endpoint string, log logging.Logger) PushService {
	return &pushService{client: client, auth: auth, store: st, endpoint: endpoint, log: log}
}

func (p *pushService) Subscribe(ctx context.Context) error {
	token, err := p.auth.Token(ctx)
	if err != nil {
		return err
	}

	keys, err := cryptox.GenerateSubscriptionKeys()
	if err != nil {
		return err
	}

	sub := &api.PushSubscription{Endpoint: p.endpoint}
	sub.Keys.P256dh = keys.P256dh
	sub.Keys.Auth = keys.Auth

	if err := p.client.Subscribe(ctx, token, sub); err != nil {
		return fmt.Errorf("subscribe error: %w", err)
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	if err := p.store.SetPushSubscription(ctx, raw); err != nil {
		return fmt.Errorf("subscription saving error: %w", err)
	}

	p.log.Info(ctx, "push subscription registered", "endpoint", p.endpoint)
	return nil
}

func (p *pushService) Unsubscribe(ctx context.Context) error {
	token, err := p.auth.Token(ctx)
	if err != nil {
		return err
	}

	raw, err := p.store.PushSubscription(ctx)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return ErrNotSubscribed
	}

	var sub api.PushSubscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return fmt.Errorf("stored subscription corrupt: %w", err)
	}

	if err := p.client.Unsubscribe(ctx, token, sub.Endpoint); err != nil {
		return fmt.Errorf("unsubscribe error: %w", err)
	}
	return p.store.ClearPushSubscription(ctx)
}

func (p *pushService) Subscribed(ctx context.Context) bool {
	raw, err := p.store.PushSubscription(ctx)
	if err != nil {
		p.log.Warn(ctx, "subscription check failed", "error", err)
		return false
	}
	return len(raw) > 0
}
