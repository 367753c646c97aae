package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
)

// MetaStore remembers the mtime of files at the moment they were imported.
type MetaStore struct {
	db *sql.DB
}

func NewMetaStore(db *sql.DB) *MetaStore {
	return &MetaStore{db: db}
}

func (m *MetaStore) TouchMeta(ctx context.Context, key string, filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat error for %s: %w", filePath, err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO meta (key, path, mtime)
		VALUES (?, ?, ?)
	`, key, filePath, info.ModTime().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}
	return nil
}

func (m *MetaStore) NeedsReload(ctx context.Context, key string, filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return true // let the import report the missing file
	}

	var storedMtime int64
	err = m.db.QueryRowContext(ctx, `SELECT mtime FROM meta WHERE key = ?`, key).Scan(&storedMtime)
	if err != nil {
		return true
	}
	return info.ModTime().UnixNano() > storedMtime
}
