package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps blob content in an embedded badger database, one value
// per blob id. Suited for single-node deployments that want everything in
// one data directory.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) the badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	if path == "" {
		return nil, fmt.Errorf("badger path is required")
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Put(ctx context.Context, id string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read blob %s: %w", id, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(id), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write blob %s: %w", id, err)
	}
	return nil
}

func (s *BadgerStore) Get(ctx context.Context, id string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("blob %s: %w", id, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	return nil
}

func (s *BadgerStore) Size(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var size int64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(id))
		if err != nil {
			return err
		}
		size = item.ValueSize()
		return nil
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, fmt.Errorf("blob %s: %w", id, ErrBlobNotFound)
		}
		return 0, fmt.Errorf("failed to stat blob %s: %w", id, err)
	}
	return size, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
