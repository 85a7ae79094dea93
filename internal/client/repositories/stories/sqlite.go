package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/common"
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

// Upsert inserts a story by id. On conflict every column is overwritten;
// the cached copy always mirrors the latest server response.
func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.Story) error {
	query := `INSERT INTO stories (id, name, description, photo_url, lat, lon, created_at, cached_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				description = excluded.description,
				photo_url = excluded.photo_url,
				lat = excluded.lat,
				lon = excluded.lon,
				created_at = excluded.created_at,
				cached_at = excluded.cached_at
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, s.PhotoURL, s.Lat, s.Lon, s.CreatedAt, s.CachedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert story: %w", err)
	}
	return nil
}

// GetAll lists all cached stories, most recent first. Stories without a
// creation time sort by the time they were cached.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Story, error) {
	query := `SELECT id, name, description, photo_url, lat, lon, created_at, cached_at
			FROM stories ORDER BY COALESCE(created_at, cached_at) DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select stories: %w", err)
	}
	defer rows.Close()

	var result []models.Story
	for rows.Next() {
		var item models.Story
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.PhotoURL,
			&item.Lat, &item.Lon, &item.CreatedAt, &item.CachedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single cached story or common.ErrorNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query := `SELECT id, name, description, photo_url, lat, lon, created_at, cached_at
			FROM stories WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s := &models.Story{}
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.PhotoURL,
		&s.Lat, &s.Lon, &s.CreatedAt, &s.CachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return s, nil
}
