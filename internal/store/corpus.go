package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=corpus.go -destination=mock_corpus.go -package=store

// DialogueRecord is one stored block of a corpus source.
type DialogueRecord struct {
	Source   string
	Position int
	Body     string
}

type CorpusStore interface {
	// ReplaceSource swaps every stored block of source for blocks, kept
	// verbatim and in order.
	ReplaceSource(ctx context.Context, source string, blocks []string) error
	// LoadDialogues returns all blocks ordered by source, then position.
	LoadDialogues(ctx context.Context) ([]DialogueRecord, error)
	Search(ctx context.Context, query string, limit int) ([]DialogueRecord, error)
}

type SQLCorpusStore struct {
	db *sql.DB
}

func NewSQLCorpusStore(db *sql.DB) CorpusStore {
	return &SQLCorpusStore{db: db}
}

func (s *SQLCorpusStore) ReplaceSource(ctx context.Context, source string, blocks []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dialogues WHERE source = ?`, source); err != nil {
		return fmt.Errorf("failed to clear source %s: %w", source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dialogues(source, position, body, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for i, body := range blocks {
		if _, err := stmt.ExecContext(ctx, source, i, body, now); err != nil {
			return fmt.Errorf("failed to insert dialogue %d of %s: %w", i, source, err)
		}
	}
	return tx.Commit()
}

func (s *SQLCorpusStore) LoadDialogues(ctx context.Context) ([]DialogueRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, position, body FROM dialogues ORDER BY source, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []DialogueRecord
	for rows.Next() {
		var r DialogueRecord
		if err := rows.Scan(&r.Source, &r.Position, &r.Body); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLCorpusStore) Search(ctx context.Context, query string, limit int) ([]DialogueRecord, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.source, d.position, d.body
		FROM   dialogues_fts
		JOIN   dialogues d ON d.id = dialogues_fts.rowid
		WHERE  dialogues_fts MATCH ?
		ORDER  BY rank
		LIMIT  ?;`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search dialogues: %w", err)
	}
	defer rows.Close()

	var results []DialogueRecord
	for rows.Next() {
		var m DialogueRecord
		if err := rows.Scan(&m.Source, &m.Position, &m.Body); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// ftsQuery quotes every term so punctuation in user input is not read as
// FTS5 syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
