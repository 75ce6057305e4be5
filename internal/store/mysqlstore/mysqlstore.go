// Package mysqlstore persists collections as JSON documents in a single
// MySQL table. Save replaces a collection's rows inside one SQL
// transaction, preserving the whole-collection write granularity the
// coordinator expects.
package mysqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS records (
		collection VARCHAR(64) NOT NULL,
		seq INT NOT NULL,
		doc JSON NOT NULL,
		PRIMARY KEY (collection, seq)
	)`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	query := `SELECT doc FROM records WHERE collection = ? ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning record row: %w", err)
		}
		records = append(records, json.RawMessage(doc))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}

	return records, nil
}

func (s *Store) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("clearing collection %s: %w", collection, err)
	}

	for i, doc := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO records (collection, seq, doc) VALUES (?, ?, ?)`,
			collection, i, []byte(doc),
		)
		if err != nil {
			return fmt.Errorf("inserting record %d into %s: %w", i, collection, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save of %s: %w", collection, err)
	}
	return nil
}
