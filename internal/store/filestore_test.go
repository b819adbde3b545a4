package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestFileStoreVersions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Latest(ctx, "proj_a")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := s.Create(ctx, "proj_a", []byte(`{"v":1}`))
	require.NoError(t, err)
	assert.Equal(t, int32(1), first.Version)
	assert.Equal(t, Digest([]byte(`{"v":1}`)), first.Digest)

	second, err := s.Create(ctx, "proj_a", []byte(`{"v":2}`))
	require.NoError(t, err)
	assert.Equal(t, int32(2), second.Version)
	assert.NotEqual(t, first.ID, second.ID)

	latest, err := s.Latest(ctx, "proj_a")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.JSONEq(t, `{"v":2}`, string(latest.Document))
	assert.Equal(t, "proj_a", latest.ProjectID)
	assert.True(t, latest.CreatedAt.Equal(s.now()))
}

func TestFileStoreSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.Create(ctx, "proj_a", []byte(`{"v":1}`))
	require.NoError(t, err)
	again, err := s.Create(ctx, "proj_a", []byte(`{"v":1}`))
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, int32(1), again.Version)
}

func TestFileStoreVersionsSortNumerically(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 11; i++ {
		_, err := s.Create(ctx, "proj_a", []byte{'[', byte('0' + i%10), ']'})
		require.NoError(t, err)
	}
	latest, err := s.Latest(ctx, "proj_a")
	require.NoError(t, err)
	assert.Equal(t, int32(11), latest.Version)
}

func TestFileStoreProjectsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Create(ctx, "proj_a", []byte(`{}`))
	require.NoError(t, err)
	_, err = s.Create(ctx, "proj_ab", []byte(`[]`))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "proj_a"))
	_, err = s.Latest(ctx, "proj_a")
	assert.ErrorIs(t, err, ErrNotFound)

	latest, err := s.Latest(ctx, "proj_ab")
	require.NoError(t, err)
	assert.Equal(t, int32(1), latest.Version)

	assert.ErrorIs(t, s.Delete(ctx, "proj_a"), ErrNotFound)
}

func TestFileStoreRejectsBadProjectID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"", "../etc", "a/b", "x*"} {
		_, err := s.Create(ctx, id, []byte(`{}`))
		assert.Error(t, err, id)
	}
}
