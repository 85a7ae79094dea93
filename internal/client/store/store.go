// Package store is the local durable store: a SQLite database holding the
// synced-story cache, bookmarks, pending offline submissions and
// installation metadata. It survives restarts and offline periods and is
// shared by the CLI and the worker.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/distory/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/distory/internal/client/repositories/pending"
	"github.com/dmitrijs2005/distory/internal/client/repositories/stories"
	"github.com/dmitrijs2005/distory/internal/client/store/migrations"
	"github.com/dmitrijs2005/distory/internal/dbx"
	"github.com/dmitrijs2005/distory/internal/logging"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// timeNow is a test seam.
var timeNow = time.Now

// Store bundles the record repositories over one SQLite database.
type Store struct {
	db        *sql.DB
	stories   stories.Repository
	bookmarks bookmarks.Repository
	pending   pending.Repository
	metadata  metadata.Repository
	log       logging.Logger

	deviceID string
}

// RunMigrations applies the embedded goose migrations. Migrations only
// create missing tables; existing data is preserved across upgrades.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the store at dsn and applies
// migrations. Open failures propagate to the caller; there is no
// degraded mode without the store.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	return New(db, log), nil
}

// New wires a Store over an already opened and migrated database.
func New(db *sql.DB, log logging.Logger) *Store {
	return &Store{
		db:        db,
		stories:   stories.NewSQLiteRepository(db),
		bookmarks: bookmarks.NewSQLiteRepository(db),
		pending:   pending.NewSQLiteRepository(db),
		metadata:  metadata.NewSQLiteRepository(db),
		log:       log,
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for components that keep their own
// table in the same file (the worker's durable HTTP cache).
func (s *Store) DB() *sql.DB {
	return s.db
}

// DeviceID returns the installation's device identifier, generating and
// persisting one on first use. Once generated it never changes.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	if s.deviceID != "" {
		return s.deviceID, nil
	}

	v, err := s.metadata.Get(ctx, metadata.KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("failed to load device id: %w", err)
	}
	if len(v) > 0 {
		s.deviceID = string(v)
		return s.deviceID, nil
	}

	id := "device_" + uuid.NewString()
	if err := s.metadata.Set(ctx, metadata.KeyDeviceID, []byte(id)); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	s.deviceID = id
	return id, nil
}

// CacheStories upserts each story into the synced cache, stamping the
// cache time. The whole batch goes through one transaction so a failure
// mid-refresh leaves the previous cache intact. Empty input is a no-op.
// Callers on the read path treat a failure here as best-effort and only
// log it.
func (s *Store) CacheStories(ctx context.Context, list []models.Story) error {
	if len(list) == 0 {
		return nil
	}

	now := timeNow()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := stories.NewSQLiteRepository(tx)
		for i := range list {
			st := list[i]
			st.CachedAt = &now
			if err := repo.Upsert(ctx, &st); err != nil {
				return fmt.Errorf("failed to cache story %s: %w", st.ID, err)
			}
		}
		return nil
	})
}

// GetCachedStories returns all cached stories, newest first.
func (s *Store) GetCachedStories(ctx context.Context) ([]models.Story, error) {
	return s.stories.GetAll(ctx)
}

// GetCachedStory returns one cached story by id.
func (s *Store) GetCachedStory(ctx context.Context, id string) (*models.Story, error) {
	return s.stories.GetByID(ctx, id)
}

// BookmarkStory copies the story into the bookmark table with the current
// time. Bookmarks have their own lifecycle, so a later cache eviction does
// not touch them.
func (s *Store) BookmarkStory(ctx context.Context, story models.Story) error {
	b := &models.Bookmark{Story: story, BookmarkedAt: timeNow()}
	return s.bookmarks.Upsert(ctx, b)
}

// RemoveBookmark deletes the bookmark for the story id. Idempotent.
func (s *Store) RemoveBookmark(ctx context.Context, id string) error {
	return s.bookmarks.Delete(ctx, id)
}

// IsBookmarked reports bookmark status. It never returns an error: the
// result gates UI rendering, so internal failures are logged and read
// as "not bookmarked".
func (s *Store) IsBookmarked(ctx context.Context, id string) bool {
	ok, err := s.bookmarks.Exists(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "bookmark check failed", "id", id, "error", err)
		return false
	}
	return ok
}

// GetBookmarkedStories lists bookmarks, most recently bookmarked first.
func (s *Store) GetBookmarkedStories(ctx context.Context) ([]models.Bookmark, error) {
	return s.bookmarks.GetAll(ctx)
}

// SaveOfflineStory stores a story authored while offline. It assigns the
// installation's device id, a placeholder id and a creation time when
// absent, and returns the stored record. A failure here must surface to
// the user: the story was not saved.
func (s *Store) SaveOfflineStory(ctx context.Context, story models.Story) (*models.PendingStory, error) {
	deviceID, err := s.DeviceID(ctx)
	if err != nil {
		return nil, err
	}

	p := &models.PendingStory{Story: story, DeviceID: deviceID, Status: models.PendingStatus}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = timeNow()
	}

	if err := s.pending.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetOfflineStories returns all pending stories for this installation.
func (s *Store) GetOfflineStories(ctx context.Context) ([]*models.PendingStory, error) {
	deviceID, err := s.DeviceID(ctx)
	if err != nil {
		return nil, err
	}
	return s.pending.GetByDevice(ctx, deviceID)
}

// DeleteOfflineStory removes a pending story by id. Idempotent.
func (s *Store) DeleteOfflineStory(ctx context.Context, id string) error {
	return s.pending.Delete(ctx, id)
}

// Token returns the persisted auth token, empty when not logged in.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.metadata.Get(ctx, metadata.KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetToken persists the auth token after a successful login.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.metadata.Set(ctx, metadata.KeyToken, []byte(token))
}

// ClearToken removes the persisted token on logout.
func (s *Store) ClearToken(ctx context.Context) error {
	return s.metadata.Delete(ctx, metadata.KeyToken)
}

// UserName returns the persisted display name of the logged-in user.
func (s *Store) UserName(ctx context.Context) (string, error) {
	v, err := s.metadata.Get(ctx, metadata.KeyUserName)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetUserName persists the display name alongside the token.
func (s *Store) SetUserName(ctx context.Context, name string) error {
	return s.metadata.Set(ctx, metadata.KeyUserName, []byte(name))
}

// PushSubscription returns the stored subscription JSON, nil when the
// installation is not subscribed.
func (s *Store) PushSubscription(ctx context.Context) ([]byte, error) {
	return s.metadata.Get(ctx, metadata.KeyPushSub)
}

// SetPushSubscription persists the subscription JSON after a successful
// subscribe call.
func (s *Store) SetPushSubscription(ctx context.Context, sub []byte) error {
	return s.metadata.Set(ctx, metadata.KeyPushSub, sub)
}

// ClearPushSubscription drops the stored subscription.
func (s *Store) ClearPushSubscription(ctx context.Context) error {
	return s.metadata.Delete(ctx, metadata.KeyPushSub)
}
