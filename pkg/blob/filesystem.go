package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FilesystemStore keeps blob content as plain files under a base directory.
// Blobs are fanned out into two-character subdirectories to keep single
// directories from growing unbounded.
type FilesystemStore struct {
	basePath string
}

// NewFilesystemStore creates the base directory if needed and returns a
// filesystem-backed blob store.
func NewFilesystemStore(basePath string) (*FilesystemStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("blob base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FilesystemStore{basePath: basePath}, nil
}

func (s *FilesystemStore) blobPath(id string) string {
	if len(id) < 2 {
		return filepath.Join(s.basePath, id)
	}
	return filepath.Join(s.basePath, id[:2], id)
}

func (s *FilesystemStore) Put(ctx context.Context, id string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.blobPath(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create blob subdirectory: %w", err)
	}

	// Write to a temp file first so a failed upload never leaves a
	// half-written blob under the final name.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp blob: %w", err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close blob %s: %w", id, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to finalize blob %s: %w", id, err)
	}
	return nil
}

func (s *FilesystemStore) Get(ctx context.Context, id string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.blobPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s: %w", id, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", id, err)
	}
	return f, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.blobPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	return nil
}

func (s *FilesystemStore) Size(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := os.Stat(s.blobPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("blob %s: %w", id, ErrBlobNotFound)
		}
		return 0, fmt.Errorf("failed to stat blob %s: %w", id, err)
	}
	return info.Size(), nil
}

func (s *FilesystemStore) Close() error {
	return nil
}
