package blob

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned when no content exists for a blob id.
var ErrBlobNotFound = errors.New("blob not found")

// Store is the content-store boundary. File metadata references content only
// through opaque blob ids; everything about the bytes themselves lives
// behind this interface.
//
// Size must be recoverable independently of the metadata records so that
// quota accounting can be reconciled against actual storage.
type Store interface {
	// Put stores the content read from r under id. size is the expected
	// number of bytes; implementations may use it for preallocation but
	// must store exactly what r yields.
	Put(ctx context.Context, id string, r io.Reader, size int64) error

	// Get opens the content stream for id. The caller owns the returned
	// reader and must close it.
	Get(ctx context.Context, id string) (io.ReadCloser, error)

	// Delete removes the content for id. Deleting a missing blob is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Size reports the stored content length for id.
	Size(ctx context.Context, id string) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
