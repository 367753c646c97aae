package store

import (
	"database/sql"
	"fmt"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		// dialogues: sentinel-delimited blocks of imported corpus files
		`CREATE TABLE IF NOT EXISTS dialogues (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			source      TEXT NOT NULL,
			position    INTEGER NOT NULL,
			body        TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			UNIQUE(source, position)
		);`,
		"CREATE INDEX IF NOT EXISTS idx_dialogues_source ON dialogues(source);",
		`CREATE VIRTUAL TABLE IF NOT EXISTS dialogues_fts USING fts5(
			body, content='dialogues', content_rowid='id'
		);`,
		`CREATE TRIGGER IF NOT EXISTS dialogues_ai AFTER INSERT ON dialogues BEGIN
			INSERT INTO dialogues_fts(rowid, body) VALUES (new.id, new.body);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS dialogues_ad AFTER DELETE ON dialogues BEGIN
			INSERT INTO dialogues_fts(dialogues_fts, rowid, body) VALUES ('delete', old.id, old.body);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS dialogues_au AFTER UPDATE ON dialogues BEGIN
			INSERT INTO dialogues_fts(dialogues_fts, rowid, body) VALUES ('delete', old.id, old.body);
			INSERT INTO dialogues_fts(rowid, body) VALUES (new.id, new.body);
		END;`,
		// exchanges: answered questions, newest last
		`CREATE TABLE IF NOT EXISTS exchanges (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			prompt      TEXT NOT NULL,
			reply       TEXT NOT NULL,
			created_at  INTEGER NOT NULL
		);`,
		// meta: mtime of each imported corpus file
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			mtime INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
