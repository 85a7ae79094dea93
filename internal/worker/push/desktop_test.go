package push

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopNotifier_BuildsNotifySendArgs(t *testing.T) {
	var gotName string
	var gotArgs []string

	orig := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { execCommand = orig })

	n := NewDesktopNotifier()
	err := n.Show(context.Background(), "New Story", Options{
		Body: "Alice posted",
		Icon: "https://distory.app/icon.png",
		Tag:  NotificationTag,
	})
	require.NoError(t, err)

	assert.Equal(t, "notify-send", gotName)
	assert.Equal(t, "New Story", gotArgs[0])
	assert.Equal(t, "Alice posted", gotArgs[1])
	assert.Contains(t, gotArgs, "--icon")
	assert.Contains(t, gotArgs, "string:x-canonical-private-synchronous:"+NotificationTag)
}

func TestDesktopNotifier_CommandFailure(t *testing.T) {
	orig := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { execCommand = orig })

	n := NewDesktopNotifier()
	err := n.Show(context.Background(), "t", Options{})
	assert.ErrorContains(t, err, "notify-send failed")
}
