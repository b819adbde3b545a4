package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/blake2b"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one saved version of a project's drawing.
type Snapshot struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"projectId"`
	Version   int32           `json:"version"`
	Digest    string          `json:"digest"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SnapshotStore keeps versioned drawings per project. Create returns the
// latest snapshot unchanged when doc has the same digest.
type SnapshotStore interface {
	Create(ctx context.Context, projectID string, doc []byte) (*Snapshot, error)
	Latest(ctx context.Context, projectID string) (*Snapshot, error)
	Delete(ctx context.Context, projectID string) error
}

// Digest is the hex blake2b-256 of an encoded drawing.
func Digest(doc []byte) string {
	sum := blake2b.Sum256(doc)
	return hex.EncodeToString(sum[:])
}
