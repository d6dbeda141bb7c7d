// Package memstore implements a pure in-memory engine.Store: no segments,
// no keydir, no recovery. It exists for tests and for the dispatcher's
// test harness to run against without touching a filesystem.
//
// Ported from original_source/src/engine/{mod,memory}.rs's KvdEngine trait
// and MemoryEngine struct — a HashMap<Vec<u8>, Vec<u8>> behind set/get/del
// — with one deliberate behavioral change: Del on an absent key here
// returns a KeyNotFound error instead of silently succeeding, so that
// engine.Store's two implementations agree on every documented invariant,
// not just the happy path.
package memstore

import (
	"sync"

	"github.com/iamNilotpal/kvd/pkg/errors"
)

// Store is a goroutine-safe, purely in-memory key-value map.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Set unconditionally upserts key -> value. Both are copied so the caller
// may reuse its buffers.
func (s *Store) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.data[string(key)] = v
	return nil
}

// Get returns a copy of the stored value, or (nil, nil) on a miss.
func (s *Store) Get(key []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[string(key)]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Del removes key, failing with KeyNotFound if it was never present.
func (s *Store) Del(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[string(key)]; !ok {
		return errors.NewKeyNotFoundError(key)
	}

	delete(s.data, string(key))
	return nil
}

// Close releases the backing map. A Store is unusable after Close.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.data)
	s.data = nil
	return nil
}
