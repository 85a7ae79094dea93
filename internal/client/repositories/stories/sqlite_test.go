package stories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/common"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:stories_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS stories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		photo_url TEXT NOT NULL DEFAULT '',
		lat REAL,
		lon REAL,
		created_at TIMESTAMP,
		cached_at TIMESTAMP
	);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM stories`)
	require.NoError(t, err)
	return db
}

func testStory(id string, createdAt time.Time) *models.Story {
	cached := createdAt.Add(time.Minute)
	return &models.Story{
		ID:          id,
		Name:        "Alice",
		Description: "a story",
		PhotoURL:    "https://cdn.example.com/" + id + ".jpg",
		CreatedAt:   createdAt,
		CachedAt:    &cached,
	}
}

func TestUpsert_InsertAndOverwrite(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	s := testStory("s1", time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(ctx, s))

	s.Description = "edited on the server"
	lat, lon := -6.2, 106.8
	s.Lat, s.Lon = &lat, &lon
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "edited on the server", got.Description)
	require.NotNil(t, got.Lat)
	assert.InDelta(t, -6.2, *got.Lat, 1e-9)
}

func TestGetAll_OrdersNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, testStory("old", base)))
	require.NoError(t, repo.Upsert(ctx, testStory("new", base.Add(time.Hour))))

	list, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
