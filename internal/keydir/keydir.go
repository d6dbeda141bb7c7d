// Package keydir implements the in-memory index that maps every live key to
// its most recent on-disk location: the core Bitcask optimization of
// trading memory (key bytes plus a small fixed locator) for O(1) lookups
// without ever scanning segment files.
//
// Adapted from iamNilotpal-ignite/internal/index: the RecordPointer/Index
// split collapses here into a single Keydir guarded by a sync.RWMutex,
// since this engine has no compaction subsystem to coordinate with and no
// need for its SegmentID/Timestamp bookkeeping — a Bitcask keydir only
// ever needs to know where the current value lives.
package keydir

import (
	"bytes"
	"sort"
	"sync"

	"github.com/iamNilotpal/kvd/internal/segment"
)

// Keydir holds the authoritative key -> locator mapping. It carries no
// value bytes, which is what bounds its memory footprint to the sum of key
// lengths plus a fixed per-entry cost, independent of value size.
type Keydir struct {
	mu      sync.RWMutex
	entries map[string]segment.Locator
}

// New creates an empty keydir.
func New() *Keydir {
	return &Keydir{entries: make(map[string]segment.Locator)}
}

// Insert unconditionally upserts key -> loc.
func (k *Keydir) Insert(key []byte, loc segment.Locator) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.entries[string(key)] = loc
}

// Remove deletes the entry for key, reporting whether one was present.
func (k *Keydir) Remove(key []byte) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	_, ok := k.entries[string(key)]
	if ok {
		delete(k.entries, string(key))
	}
	return ok
}

// Get looks up key, reporting whether an entry exists.
func (k *Keydir) Get(key []byte) (segment.Locator, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	loc, ok := k.entries[string(key)]
	return loc, ok
}

// Len reports the number of live keys.
func (k *Keydir) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.entries)
}

// Keys returns every live key, sorted lexicographically. This ordering is
// never observable through a client-facing operation (no range scan is
// exposed); it exists purely to make diagnostics and tests deterministic.
func (k *Keydir) Keys() [][]byte {
	k.mu.RLock()
	defer k.mu.RUnlock()

	keys := make([][]byte, 0, len(k.entries))
	for key := range k.entries {
		keys = append(keys, []byte(key))
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return keys
}
