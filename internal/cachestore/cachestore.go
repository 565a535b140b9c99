// Package cachestore persists solved grids across process runs, keyed
// by the encoded puzzle string from internal/nono/cache's codec. It
// exists so the demo HTTP service in internal/transport/http never
// re-runs the driver on a puzzle it has already solved. Grounded on
// hailam-chessplay's internal/storage: same badger.DB-wrapped
// Open/Close shape, with a Put/Get surface narrowed to one key/value
// pair.
package cachestore

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Get when the key has never been cached.
var ErrNotFound = errors.New("cachestore: not found")

// Store wraps a badger.DB mapping an encoded puzzle string to the
// encoded grid string of its first solution.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) the badger database rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put records the encoded solution grid for the given encoded puzzle.
func (s *Store) Put(puzzleKey, gridValue string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(puzzleKey), []byte(gridValue))
	})
}

// Get retrieves the encoded solution grid previously stored for
// puzzleKey, or ErrNotFound if none was cached.
func (s *Store) Get(puzzleKey string) (string, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(puzzleKey))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	return value, err
}
