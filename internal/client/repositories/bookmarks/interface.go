// Package bookmarks persists full copies of bookmarked stories with an
// independent lifecycle from the synced-story cache.
package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/distory/internal/client/models"
)

// Repository describes operations over the bookmark table.
type Repository interface {
	// Upsert saves a bookmark, overwriting any existing one with the same ID.
	Upsert(ctx context.Context, b *models.Bookmark) error

	// Delete removes a bookmark by story ID. Deleting a missing ID is not
	// an error.
	Delete(ctx context.Context, id string) error

	// Exists reports whether a bookmark with the given story ID is present.
	Exists(ctx context.Context, id string) (bool, error)

	// GetAll returns all bookmarks, most recently bookmarked first.
	GetAll(ctx context.Context) ([]models.Bookmark, error)
}
