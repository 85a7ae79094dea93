package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/common"
)

func setupSyncService(t *testing.T, client *fakeClient) (SyncService, *store.Store) {
	t.Helper()
	st := setupStore(t)
	require.NoError(t, st.SetToken(context.Background(), "jwt"))
	auth := NewAuthService(client, st)
	return NewSyncService(client, auth, st, testLogger()), st
}

func savePending(t *testing.T, st *store.Store, description string) *models.PendingStory {
	t.Helper()
	p, err := st.SaveOfflineStory(context.Background(), models.Story{Description: description})
	require.NoError(t, err)
	return p
}

func TestSyncPending_UploadsAndDeletes(t *testing.T) {
	var uploaded []string
	client := &fakeClient{
		addStoryFn: func(ctx context.Context, token string, story *models.PendingStory) error {
			uploaded = append(uploaded, story.Description)
			return nil
		},
	}
	svc, st := setupSyncService(t, client)
	ctx := context.Background()

	savePending(t, st, "one")
	savePending(t, st, "two")

	report, err := svc.SyncPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Synced)
	assert.Equal(t, 0, report.Failed)
	assert.Len(t, uploaded, 2)

	left, err := st.GetOfflineStories(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestSyncPending_PartialFailureKeepsFailedRecord(t *testing.T) {
	client := &fakeClient{
		addStoryFn: func(ctx context.Context, token string, story *models.PendingStory) error {
			if story.Description == "bad" {
				return api.ErrUnavailable
			}
			return nil
		},
	}
	svc, st := setupSyncService(t, client)
	ctx := context.Background()

	savePending(t, st, "good")
	bad := savePending(t, st, "bad")

	report, err := svc.SyncPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, 1, report.Failed)

	left, err := st.GetOfflineStories(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, bad.ID, left[0].ID)
}

func TestSyncPending_EmptyQueue(t *testing.T) {
	svc, _ := setupSyncService(t, &fakeClient{})

	report, err := svc.SyncPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Synced)
	assert.Zero(t, report.Failed)
}

func TestSyncPending_RequiresToken(t *testing.T) {
	st := setupStore(t)
	client := &fakeClient{}
	svc := NewSyncService(client, NewAuthService(client, st), st, testLogger())

	_, err := svc.SyncPending(context.Background())
	assert.ErrorIs(t, err, common.ErrNoToken)
}
