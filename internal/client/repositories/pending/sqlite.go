package pending

import (
	"context"
	"database/sql"
	"errors"
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

// Insert stores a pending story. A duplicate id is an error: pending
// records are never updated in place.
func (r *SQLiteRepository) Insert(ctx context.Context, s *models.PendingStory) error {
	query := `INSERT INTO pending_stories (id, device_id, name, description, photo, lat, lon, created_at, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.DeviceID, s.Name, s.Description, s.Photo, s.Lat, s.Lon, s.CreatedAt, s.Status)
	if err != nil {
		return fmt.Errorf("failed to insert pending story: %w", err)
	}
	return nil
}

// GetAll returns every pending story regardless of device.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.PendingStory, error) {
	return r.query(ctx, `SELECT id, device_id, name, description, photo, lat, lon, created_at, status
			FROM pending_stories`)
}

// GetByDevice returns pending stories scoped to one installation.
func (r *SQLiteRepository) GetByDevice(ctx context.Context, deviceID string) ([]*models.PendingStory, error) {
	return r.query(ctx, `SELECT id, device_id, name, description, photo, lat, lon, created_at, status
			FROM pending_stories WHERE device_id = ?`, deviceID)
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]*models.PendingStory, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to select pending stories: %w", err)
	}
	defer rows.Close()

	var result []*models.PendingStory
	for rows.Next() {
		item := &models.PendingStory{}
		if err := rows.Scan(&item.ID, &item.DeviceID, &item.Name, &item.Description,
			&item.Photo, &item.Lat, &item.Lon, &item.CreatedAt, &item.Status); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a pending story by id. Idempotent.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_stories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pending story: %w", err)
	}
	return nil
}
