// Package stories persists the last known server story list so it can be
// read back while offline.
package stories

import (
	"context"

	"github.com/dmitrijs2005/distory/internal/client/models"
)

// Repository describes operations over the synced-story cache table.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// Upsert inserts a story or fully overwrites an existing one by ID.
	// Fields are never merged.
	Upsert(ctx context.Context, story *models.Story) error

	// GetAll returns all cached stories, newest first by creation time,
	// falling back to cache time when creation time is absent.
	GetAll(ctx context.Context) ([]models.Story, error)

	// GetByID returns a single cached story.
	GetByID(ctx context.Context, id string) (*models.Story, error)
}
