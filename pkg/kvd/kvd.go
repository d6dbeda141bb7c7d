// Package kvd is the public facade over the storage engine: a single
// Instance type wrapping internal/engine.Engine, exposing Set/Get/Delete/
// Close to callers who don't need the internal package layout.
//
// Adapted from iamNilotpal-ignite/pkg/ignite.Instance. TTL (SetX) is
// dropped entirely — it's an explicit non-goal here, not a deferred
// feature — and Set/Get/Delete no longer take a context.Context, matching
// the engine's own signatures: only construction touches the filesystem
// in a way worth cancelling.
package kvd

import (
	"context"

	"github.com/iamNilotpal/kvd/internal/engine"
	"github.com/iamNilotpal/kvd/pkg/options"
)

// Instance is the primary entry point for interacting with a kvd store.
type Instance struct {
	engine *engine.Engine
}

// NewInstance opens (or creates) a store in dataDir, applying any further
// overrides in opts; a WithDataDir in opts takes precedence over dataDir.
func NewInstance(ctx context.Context, dataDir string, opts ...options.OptionFunc) (*Instance, error) {
	eng, err := engine.Open(ctx, dataDir, opts...)
	if err != nil {
		return nil, err
	}
	return &Instance{engine: eng}, nil
}

// Set stores value under key, overwriting any previous value.
func (i *Instance) Set(key string, value []byte) error {
	return i.engine.Set([]byte(key), value)
}

// Get retrieves the value stored under key, or (nil, nil) on a miss.
func (i *Instance) Get(key string) ([]byte, error) {
	return i.engine.Get([]byte(key))
}

// Delete removes key. It fails with a KeyNotFound error if key was never
// set or was already deleted.
func (i *Instance) Delete(key string) error {
	return i.engine.Del([]byte(key))
}

// Close flushes and closes every open segment file. Safe to call more
// than once.
func (i *Instance) Close() error {
	return i.engine.Close()
}
