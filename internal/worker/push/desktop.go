package push

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/google/uuid"
)

// execCommand is a test seam for exec.CommandContext.
var execCommand = exec.CommandContext

// DesktopNotifier shows notifications through notify-send. Tags map to
// replace-ids, so a re-used tag replaces the previous notification
// instead of stacking a new one.
type DesktopNotifier struct{}

func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

func (n *DesktopNotifier) Show(ctx context.Context, title string, opts Options) error {
	args := []string{title}
	if opts.Body != "" {
		args = append(args, opts.Body)
	}
	if opts.Icon != "" {
		args = append(args, "--icon", opts.Icon)
	}
	if opts.Tag != "" {
		args = append(args, "--hint", "string:x-canonical-private-synchronous:"+opts.Tag)
	}

	cmd := execCommand(ctx, "notify-send", args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

// Launcher opens a URL in the user's browser.
type Launcher func(ctx context.Context, url string) error

// XDGOpen launches a URL with xdg-open.
func XDGOpen(ctx context.Context, url string) error {
	if err := execCommand(ctx, "xdg-open", url).Run(); err != nil {
		return fmt.Errorf("xdg-open failed: %w", err)
	}
	return nil
}

// MemoryRegistry is a thread-safe WindowRegistry tracking windows the
// worker itself opened. Focus is a no-op beyond validation since the
// browser owns actual window stacking.
type MemoryRegistry struct {
	mu      sync.Mutex
	windows []Window
	launch  Launcher
}

// NewMemoryRegistry builds a registry. launch may be nil, in which case
// Open only records the window.
func NewMemoryRegistry(launch Launcher) *MemoryRegistry {
	return &MemoryRegistry{launch: launch}
}

func (r *MemoryRegistry) List(ctx context.Context) ([]Window, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Window, len(r.windows))
	copy(out, r.windows)
	return out, nil
}

func (r *MemoryRegistry) Focus(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.windows {
		if w.ID == id {
			return nil
		}
	}
	return fmt.Errorf("unknown window: %s", id)
}

func (r *MemoryRegistry) Navigate(ctx context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.windows {
		if w.ID == id {
			r.windows[i].URL = url
			return nil
		}
	}
	return fmt.Errorf("unknown window: %s", id)
}

func (r *MemoryRegistry) Open(ctx context.Context, url string) error {
	if r.launch != nil {
		if err := r.launch(ctx, url); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows = append(r.windows, Window{ID: uuid.NewString(), URL: url})
	return nil
}
