package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/simpledraw/simpledraw/internal/auth"
	"github.com/simpledraw/simpledraw/internal/codec"
	"github.com/simpledraw/simpledraw/internal/store"
	"github.com/simpledraw/simpledraw/internal/tools"
	"github.com/simpledraw/simpledraw/internal/typeid"
)

var (
	ErrNotFound        = errors.New("project not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidDocument = errors.New("invalid document")
)

type Service struct {
	snapshots store.SnapshotStore
	tokens    *auth.Service
}

func NewService(snapshots store.SnapshotStore, tokens *auth.Service) *Service {
	return &Service{snapshots: snapshots, tokens: tokens}
}

// Created is a new project with the owner's share token.
type Created struct {
	ID       string          `json:"id"`
	Token    string          `json:"token"`
	Snapshot *store.Snapshot `json:"snapshot"`
}

// Create seeds a project with the default drawing and issues its first
// share token.
func (s *Service) Create(ctx context.Context, displayName string) (*Created, error) {
	projectID := typeid.NewProjectID()

	doc, err := codec.Marshal(tools.CreateDefault())
	if err != nil {
		return nil, fmt.Errorf("marshal default document: %w", err)
	}

	snap, err := s.snapshots.Create(ctx, projectID, doc)
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	token, err := s.tokens.IssueToken(projectID, displayName)
	if err != nil {
		return nil, err
	}

	return &Created{ID: projectID, Token: token, Snapshot: snap}, nil
}

func (s *Service) Latest(ctx context.Context, grant *auth.Grant, projectID string) (*store.Snapshot, error) {
	if err := authorize(grant, projectID); err != nil {
		return nil, err
	}
	snap, err := s.snapshots.Latest(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return snap, nil
}

// Save stores doc as a new version. The document must decode.
func (s *Service) Save(ctx context.Context, grant *auth.Grant, projectID string, doc []byte) (*store.Snapshot, error) {
	if err := authorize(grant, projectID); err != nil {
		return nil, err
	}
	if _, err := codec.Unmarshal(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	snap, err := s.snapshots.Create(ctx, projectID, doc)
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

func (s *Service) Delete(ctx context.Context, grant *auth.Grant, projectID string) error {
	if err := authorize(grant, projectID); err != nil {
		return err
	}
	if err := s.snapshots.Delete(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// LoadDocument returns the latest drawing of a project, or nil when it has
// none. It backs the collaboration hub.
func (s *Service) LoadDocument(ctx context.Context, projectID string) ([]byte, error) {
	snap, err := s.snapshots.Latest(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap.Document, nil
}

// SaveDocument stores a drawing produced by the collaboration hub.
func (s *Service) SaveDocument(ctx context.Context, projectID string, doc []byte) error {
	_, err := s.snapshots.Create(ctx, projectID, doc)
	return err
}

func authorize(grant *auth.Grant, projectID string) error {
	if grant == nil || grant.ProjectID != projectID {
		return ErrForbidden
	}
	return nil
}
