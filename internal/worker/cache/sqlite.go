package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/distory/internal/dbx"
)

// SQLiteStore is a Store over the http_cache table, sharing the database
// file with the local durable store so cached responses survive worker
// restarts.
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (r *SQLiteStore) Match(ctx context.Context, generation, url string) (*Entry, error) {
	query := `SELECT url, status, header, body, stored_at FROM http_cache
			WHERE generation = ? AND url = ?`
	row := r.db.QueryRowContext(ctx, query, generation, url)

	e := &Entry{}
	var rawHeader []byte
	err := row.Scan(&e.URL, &e.Status, &rawHeader, &e.Body, &e.StoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match cache entry: %w", err)
	}

	e.Header = http.Header{}
	if err := json.Unmarshal(rawHeader, &e.Header); err != nil {
		return nil, fmt.Errorf("failed to decode cached header: %w", err)
	}
	return e, nil
}

func (r *SQLiteStore) Put(ctx context.Context, generation string, entry *Entry) error {
	rawHeader, err := json.Marshal(entry.Header)
	if err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}

	query := `INSERT INTO http_cache (generation, url, status, header, body, stored_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(generation, url) DO UPDATE SET status = excluded.status,
				header = excluded.header,
				body = excluded.body,
				stored_at = excluded.stored_at
	`
	_, err = r.db.ExecContext(ctx, query,
		generation, entry.URL, entry.Status, rawHeader, entry.Body, entry.StoredAt)
	if err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Delete(ctx context.Context, generation, url string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM http_cache WHERE generation = ? AND url = ?`, generation, url)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Keys(ctx context.Context, generation string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT url FROM http_cache WHERE generation = ?`, generation)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *SQLiteStore) Generations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT generation FROM http_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var gens []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return gens, nil
}

func (r *SQLiteStore) DeleteGeneration(ctx context.Context, generation string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM http_cache WHERE generation = ?`, generation)
	if err != nil {
		return fmt.Errorf("failed to delete generation: %w", err)
	}
	return nil
}
