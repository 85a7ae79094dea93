package push

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/distory/internal/logging"
)

// Notifier displays notifications to the user. The worker injects a
// desktop implementation; tests inject a recorder.
type Notifier interface {
	Show(ctx context.Context, title string, opts Options) error
}

// Window is an open app window/tab known to the registry.
type Window struct {
	ID  string
	URL string
}

// WindowRegistry abstracts the open-window lookup used on notification
// click: list what is open, focus or navigate an existing window, or open
// a fresh one.
type WindowRegistry interface {
	List(ctx context.Context) ([]Window, error)
	Focus(ctx context.Context, id string) error
	Navigate(ctx context.Context, id, url string) error
	Open(ctx context.Context, url string) error
}

// Dispatcher handles push receipt and notification activation.
type Dispatcher struct {
	appOrigin  string
	listingURL string
	def        Payload
	notifier   Notifier
	windows    WindowRegistry
	log        logging.Logger
}

// NewDispatcher builds a Dispatcher. listingURL is the in-app story
// listing, the default deep-link target.
func NewDispatcher(appOrigin, listingURL string, def Payload, n Notifier, w WindowRegistry, log logging.Logger) *Dispatcher {
	return &Dispatcher{
		appOrigin:  appOrigin,
		listingURL: listingURL,
		def:        def,
		notifier:   n,
		windows:    w,
		log:        log,
	}
}

// HandlePush parses the raw message and shows exactly one notification.
// A malformed payload falls back to the default notification rather than
// failing silently.
func (d *Dispatcher) HandlePush(ctx context.Context, raw []byte) error {
	p := Parse(raw, d.def)

	if err := d.notifier.Show(ctx, p.Title, p.Options); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}
	d.log.Info(ctx, "notification shown", "title", p.Title, "tag", p.Options.Tag)
	return nil
}

// HandleClick routes a notification activation. The target is the listing
// for the view action, else the payload-supplied URL, else the listing.
// An already-open app window is focused (and navigated when its URL
// differs) in preference to opening a new one.
func (d *Dispatcher) HandleClick(ctx context.Context, action string, p Payload) error {
	target := d.resolveTarget(action, p)

	wins, err := d.windows.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}

	for _, w := range wins {
		if !strings.HasPrefix(w.URL, d.appOrigin) {
			continue
		}
		if err := d.windows.Focus(ctx, w.ID); err != nil {
			return fmt.Errorf("failed to focus window: %w", err)
		}
		if w.URL != target {
			if err := d.windows.Navigate(ctx, w.ID, target); err != nil {
				return fmt.Errorf("failed to navigate window: %w", err)
			}
		}
		return nil
	}

	if err := d.windows.Open(ctx, target); err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}
	return nil
}

func (d *Dispatcher) resolveTarget(action string, p Payload) string {
	if action == ActionView {
		return d.listingURL
	}
	if p.Options.Data.URL != "" {
		return p.Options.Data.URL
	}
	return d.listingURL
}
