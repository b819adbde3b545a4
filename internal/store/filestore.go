package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/simpledraw/simpledraw/internal/typeid"
)

// FileStore keeps snapshots as <projectID>.v<version>.json files in one
// directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) Create(ctx context.Context, projectID string, doc []byte) (*Snapshot, error) {
	if err := checkProjectID(projectID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	digest := Digest(doc)
	latest, err := s.latest(projectID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	var version int32 = 1
	if latest != nil {
		if latest.Digest == digest {
			return latest, nil
		}
		version = latest.Version + 1
	}

	snap := &Snapshot{
		ID:        typeid.NewSnapshotID(),
		ProjectID: projectID,
		Version:   version,
		Digest:    digest,
		Document:  json.RawMessage(doc),
		CreatedAt: s.now().UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := writeFileAtomic(s.path(projectID, version), data); err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	return snap, nil
}

func (s *FileStore) Latest(ctx context.Context, projectID string) (*Snapshot, error) {
	if err := checkProjectID(projectID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest(projectID)
}

func (s *FileStore) Delete(ctx context.Context, projectID string) error {
	if err := checkProjectID(projectID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.versions(projectID)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		return ErrNotFound
	}
	for _, v := range versions {
		if err := os.Remove(s.path(projectID, v)); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
	}
	return nil
}

func (s *FileStore) latest(projectID string) (*Snapshot, error) {
	versions, err := s.versions(projectID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(s.path(projectID, versions[len(versions)-1]))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// versions lists the stored versions of a project in ascending order.
func (s *FileStore) versions(projectID string) ([]int32, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, projectID+".v*.json"))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var versions []int32
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), projectID+".v"), ".json")
		v, err := strconv.ParseInt(name, 10, 32)
		if err != nil {
			continue
		}
		versions = append(versions, int32(v))
	}
	slices.Sort(versions)
	return versions, nil
}

func (s *FileStore) path(projectID string, version int32) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.v%d.json", projectID, version))
}

func checkProjectID(projectID string) error {
	if projectID == "" || strings.ContainsAny(projectID, `/\.*?[`) {
		return fmt.Errorf("invalid project id %q", projectID)
	}
	return nil
}
