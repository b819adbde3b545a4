package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simpledraw/simpledraw/internal/typeid"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	version    INTEGER NOT NULL,
	digest     TEXT NOT NULL,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (project_id, version)
)`

const latestSnapshot = `
SELECT id, project_id, version, digest, document, created_at
FROM snapshots
WHERE project_id = $1
ORDER BY version DESC
LIMIT 1`

const insertSnapshot = `
INSERT INTO snapshots (id, project_id, version, digest, document)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, project_id, version, digest, document, created_at`

// PostgresStore keeps snapshots in the snapshots table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, projectID string, doc []byte) (*Snapshot, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	digest := Digest(doc)
	latest, err := scanSnapshot(tx.QueryRow(ctx, latestSnapshot+" FOR UPDATE", projectID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	var version int32 = 1
	if latest != nil {
		if latest.Digest == digest {
			return latest, nil
		}
		version = latest.Version + 1
	}

	snap, err := scanSnapshot(tx.QueryRow(ctx, insertSnapshot,
		typeid.NewSnapshotID(), projectID, version, digest, doc))
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}

func (s *PostgresStore) Latest(ctx context.Context, projectID string) (*Snapshot, error) {
	snap, err := scanSnapshot(s.pool.QueryRow(ctx, latestSnapshot, projectID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return snap, nil
}

func (s *PostgresStore) Delete(ctx context.Context, projectID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM snapshots WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSnapshot(row pgx.Row) (*Snapshot, error) {
	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.ProjectID, &snap.Version, &snap.Digest, &snap.Document, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
