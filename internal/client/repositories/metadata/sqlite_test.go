package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadata_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM metadata`)
	require.NoError(t, err)
	return db
}

func TestGet_MissingKeyReturnsNil(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	v, err := repo.Get(context.Background(), KeyToken)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("first")))
	require.NoError(t, repo.Set(ctx, KeyToken, []byte("second")))

	v, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), v)
}

func TestDelete_RemovesOneKey(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("t")))
	require.NoError(t, repo.Set(ctx, KeyDeviceID, []byte("device_x")))
	require.NoError(t, repo.Delete(ctx, KeyToken))

	v, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = repo.Get(ctx, KeyDeviceID)
	require.NoError(t, err)
	assert.Equal(t, []byte("device_x"), v)
}

func TestClear_RemovesEverything(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("t")))
	require.NoError(t, repo.Set(ctx, KeyPushSub, []byte(`{"endpoint":"e"}`)))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{KeyToken, KeyPushSub, KeyUserName} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}
