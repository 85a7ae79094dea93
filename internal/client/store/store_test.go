package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/logging"
	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	st, err := Open(context.Background(), dsn, logging.NewDefault(slog.LevelError))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestDeviceID_GeneratedOnceAndPersisted(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	id, err := st.DeviceID(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "device_"))

	again, err := st.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// A fresh Store over the same database sees the same id.
	st2 := New(st.DB(), logging.NewDefault(slog.LevelError))
	id2, err := st2.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
}

func TestCacheStories_StampsCacheTimeAndSortsNewestFirst(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	fixed := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	list := []models.Story{
		{ID: "old", Name: "A", Description: "d", CreatedAt: base},
		{ID: "new", Name: "B", Description: "d", CreatedAt: base.Add(time.Hour)},
	}
	require.NoError(t, st.CacheStories(ctx, list))

	got, err := st.GetCachedStories(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	require.NotNil(t, got[0].CachedAt)
	assert.True(t, got[0].CachedAt.Equal(fixed))
}

func TestCacheStories_EmptyListIsNoop(t *testing.T) {
	st := setupStore(t)
	assert.NoError(t, st.CacheStories(context.Background(), nil))
}

func TestCacheStories_RefreshOverwrites(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	s := models.Story{ID: "s1", Name: "A", Description: "v1", CreatedAt: time.Now().UTC()}
	require.NoError(t, st.CacheStories(ctx, []models.Story{s}))

	s.Description = "v2"
	require.NoError(t, st.CacheStories(ctx, []models.Story{s}))

	got, err := st.GetCachedStory(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Description)
}

func TestBookmarks_ToggleLifecycle(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	s := models.Story{ID: "s1", Name: "A", Description: "d", CreatedAt: time.Now().UTC()}

	assert.False(t, st.IsBookmarked(ctx, "s1"))

	require.NoError(t, st.BookmarkStory(ctx, s))
	assert.True(t, st.IsBookmarked(ctx, "s1"))

	list, err := st.GetBookmarkedStories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s1", list[0].ID)

	require.NoError(t, st.RemoveBookmark(ctx, "s1"))
	assert.False(t, st.IsBookmarked(ctx, "s1"))
}

func TestIsBookmarked_FalseAfterClose(t *testing.T) {
	st := setupStore(t)
	require.NoError(t, st.Close())

	// Must not panic or surface an error, only report false.
	assert.False(t, st.IsBookmarked(context.Background(), "s1"))
}

func TestSaveOfflineStory_AssignsIdentityAndScope(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	saved, err := st.SaveOfflineStory(ctx, models.Story{
		Description: "offline story",
		Photo:       []byte{1, 2, 3},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Equal(t, models.PendingStatus, saved.Status)

	deviceID, err := st.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, deviceID, saved.DeviceID)

	list, err := st.GetOfflineStories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
}

func TestDeleteOfflineStory_RemovesRecord(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	saved, err := st.SaveOfflineStory(ctx, models.Story{Description: "d"})
	require.NoError(t, err)

	require.NoError(t, st.DeleteOfflineStory(ctx, saved.ID))

	list, err := st.GetOfflineStories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, st.DeleteOfflineStory(ctx, saved.ID))
}

func TestUserName_RoundTrip(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetUserName(ctx, "Alice"))
	name, err := st.UserName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
}

func TestToken_RoundTrip(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	tok, err := st.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, st.SetToken(ctx, "jwt-token"))
	tok, err = st.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", tok)

	require.NoError(t, st.ClearToken(ctx))
	tok, err = st.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
