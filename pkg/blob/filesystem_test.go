package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStoreRoundtrip(t *testing.T) {
	s, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	content := "hello blob"

	require.NoError(t, s.Put(ctx, "abcdef", strings.NewReader(content), int64(len(content))))

	size, err := s.Size(ctx, "abcdef")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	rc, err := s.Get(ctx, "abcdef")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestFilesystemStoreFanOut(t *testing.T) {
	base := t.TempDir()
	s, err := NewFilesystemStore(base)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "abcdef", strings.NewReader("x"), 1))

	// Blobs land in a two-character subdirectory.
	_, err = os.Stat(filepath.Join(base, "ab", "abcdef"))
	require.NoError(t, err)
}

func TestFilesystemStoreMissing(t *testing.T) {
	s, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	_, err = s.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrBlobNotFound)

	_, err = s.Size(ctx, "nope")
	require.ErrorIs(t, err, ErrBlobNotFound)

	// Deleting a missing blob is not an error.
	require.NoError(t, s.Delete(ctx, "nope"))
}

func TestFilesystemStoreOverwrite(t *testing.T) {
	s, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "abcdef", strings.NewReader("first"), 5))
	require.NoError(t, s.Put(ctx, "abcdef", strings.NewReader("second"), 6))

	rc, err := s.Get(ctx, "abcdef")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFilesystemStoreDelete(t *testing.T) {
	s, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "abcdef", strings.NewReader("x"), 1))
	require.NoError(t, s.Delete(ctx, "abcdef"))

	_, err = s.Get(ctx, "abcdef")
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a", strings.NewReader("data"), 4))
	assert.Equal(t, 1, s.Len())

	rc, err := s.Get(ctx, "a")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "data", string(data))

	require.NoError(t, s.Delete(ctx, "a"))
	assert.Equal(t, 0, s.Len())

	_, err = s.Get(ctx, "a")
	require.ErrorIs(t, err, ErrBlobNotFound)
}
