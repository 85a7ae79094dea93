package bookmarks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert saves a bookmark by story id, overwriting all columns on conflict.
func (r *SQLiteRepository) Upsert(ctx context.Context, b *models.Bookmark) error {
	query := `INSERT INTO bookmarks (id, name, description, photo_url, lat, lon, created_at, bookmarked_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				description = excluded.description,
				photo_url = excluded.photo_url,
				lat = excluded.lat,
				lon = excluded.lon,
				created_at = excluded.created_at,
				bookmarked_at = excluded.bookmarked_at
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.Description, b.PhotoURL, b.Lat, b.Lon, b.CreatedAt, b.BookmarkedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert bookmark: %w", err)
	}
	return nil
}

// Delete removes a bookmark by story id. Idempotent.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

// Exists checks whether the story id has a bookmark.
func (r *SQLiteRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM bookmarks WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return n > 0, nil
}

// GetAll lists all bookmarks, most recently bookmarked first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Bookmark, error) {
	query := `SELECT id, name, description, photo_url, lat, lon, created_at, bookmarked_at
			FROM bookmarks ORDER BY bookmarked_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookmarks: %w", err)
	}
	defer rows.Close()

	var result []models.Bookmark
	for rows.Next() {
		var item models.Bookmark
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.PhotoURL,
			&item.Lat, &item.Lon, &item.CreatedAt, &item.BookmarkedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
