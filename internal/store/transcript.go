package store

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -source=transcript.go -destination=mock_transcript.go -package=store

type Exchange struct {
	ID        int64
	Prompt    string
	Reply     string
	CreatedAt time.Time
}

type TranscriptStore interface {
	SaveExchange(ctx context.Context, prompt, reply string) error
	// Recent returns up to limit exchanges, oldest first.
	Recent(ctx context.Context, limit int) ([]Exchange, error)
}

type SQLTranscriptStore struct {
	db *sql.DB
}

func NewSQLTranscriptStore(db *sql.DB) TranscriptStore {
	return &SQLTranscriptStore{db: db}
}

func (s *SQLTranscriptStore) SaveExchange(ctx context.Context, prompt, reply string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchanges(prompt, reply, created_at)
		VALUES (?, ?, ?)
	`, prompt, reply, time.Now().Unix())
	return err
}

func (s *SQLTranscriptStore) Recent(ctx context.Context, limit int) ([]Exchange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, prompt, reply, created_at FROM (
			SELECT id, prompt, reply, created_at
			FROM   exchanges
			ORDER  BY id DESC
			LIMIT  ?
		) ORDER BY id ASC
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		var e Exchange
		var created int64
		if err := rows.Scan(&e.ID, &e.Prompt, &e.Reply, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0)
		exchanges = append(exchanges, e)
	}
	return exchanges, rows.Err()
}
