package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteCache is a file-backed key-value store, the local equivalent of the
// platform preferences store.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens (creating if needed) the database at path.
func OpenSQLiteCache(ctx context.Context, path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	c, err := NewSQLiteCache(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func NewSQLiteCache(ctx context.Context, db *sql.DB) (*SQLiteCache, error) {
	c := &SQLiteCache{db: db}
	if err := c.migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate preferences: %w", err)
	}
	return c, nil
}

func (c *SQLiteCache) migrate(ctx context.Context) error {
	query := `
    CREATE TABLE IF NOT EXISTS preferences (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    );`
	_, err := c.db.ExecContext(ctx, query)
	return err
}

func (c *SQLiteCache) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *SQLiteCache) Set(ctx context.Context, key string, value string) error {
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
