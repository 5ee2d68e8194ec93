package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps documents in a single jsonb table, one row per
// (collection, id). It honors the same contract as FileStore so the two can
// be swapped via configuration.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an established pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	const query = `
        SELECT doc FROM documents
        WHERE collection=$1
        ORDER BY created_at, id`

	rows, err := p.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, ioErr("list documents", err)
	}
	defer rows.Close()

	docs := []json.RawMessage{}
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, ioErr("scan document", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("list documents", err)
	}
	return docs, nil
}

func (p *PostgresStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	const query = `SELECT doc FROM documents WHERE collection=$1 AND id=$2`

	var doc json.RawMessage
	if err := p.pool.QueryRow(ctx, query, collection, id).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, ioErr("get document", err)
	}
	return doc, nil
}

func (p *PostgresStore) Insert(ctx context.Context, collection, id string, doc json.RawMessage) error {
	const query = `
        INSERT INTO documents (collection, id, doc)
        VALUES ($1, $2, $3)
        ON CONFLICT (collection, id) DO NOTHING`

	cmd, err := p.pool.Exec(ctx, query, collection, id, doc)
	if err != nil {
		return ioErr("insert document", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrDuplicateID
	}
	return nil
}

func (p *PostgresStore) Replace(ctx context.Context, collection, id string, doc json.RawMessage) error {
	const query = `
        UPDATE documents SET doc=$3, updated_at=NOW()
        WHERE collection=$1 AND id=$2`

	cmd, err := p.pool.Exec(ctx, query, collection, id, doc)
	if err != nil {
		return ioErr("replace document", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	const query = `DELETE FROM documents WHERE collection=$1 AND id=$2`

	cmd, err := p.pool.Exec(ctx, query, collection, id)
	if err != nil {
		return ioErr("delete document", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll swaps a whole collection inside one transaction.
func (p *PostgresStore) ReplaceAll(ctx context.Context, collection string, docs []json.RawMessage) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return ioErr("begin replace-all", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE collection=$1`, collection); err != nil {
		return ioErr("clear collection", err)
	}
	for _, doc := range docs {
		id, err := DocumentID(doc)
		if err != nil {
			return err
		}
		const query = `INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, query, collection, id, doc); err != nil {
			return ioErr("insert document", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return ioErr("commit replace-all", err)
	}
	return nil
}

// Close is a no-op; pool lifecycle belongs to the persistence layer.
func (p *PostgresStore) Close() error { return nil }

var _ Store = (*PostgresStore)(nil)
