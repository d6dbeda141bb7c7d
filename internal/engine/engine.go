// Package engine provides the core database engine: the public Set/Get/Del
// surface that composes internal/keydir, internal/segment, and
// internal/recovery and enforces the data model's invariants (segment
// roll-over, latest-wins semantics, idempotent Close).
//
// Adapted from iamNilotpal-ignite/internal/engine.Engine: the index/storage/
// compaction trio collapses into keydir/segment/recovery (compaction has no
// home here — it is an explicit non-goal), and its CAS-guarded
// atomic.Bool Close pattern carries over unchanged.
package engine

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/kvd/internal/keydir"
	"github.com/iamNilotpal/kvd/internal/record"
	"github.com/iamNilotpal/kvd/internal/recovery"
	"github.com/iamNilotpal/kvd/internal/segment"
	"github.com/iamNilotpal/kvd/pkg/errors"
	"github.com/iamNilotpal/kvd/pkg/filesys"
	"github.com/iamNilotpal/kvd/pkg/logger"
	"github.com/iamNilotpal/kvd/pkg/options"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Store is the operation surface a dispatcher needs from a key-value
// backend. *Engine satisfies it; so does memstore.Store, letting tests and
// the dispatcher run against either without a type switch.
type Store interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Del(key []byte) error
	Close() error
}

var _ Store = (*Engine)(nil)

// Engine is the public, on-disk, single-node store. All public methods are
// serialized by mu — a direct simplification of marselester-rascaldb's
// actor/channel serialization point, since this engine has no background
// goroutine needing its own slot in that serialization.
type Engine struct {
	mu     sync.Mutex
	closed atomic.Bool

	dataDir string
	opts    *options.Options
	log     *zap.SugaredLogger

	kd      *keydir.Keydir
	readers *segment.ReaderSet
	writer  *segment.Writer
}

// Open reconstructs an Engine from whatever segments exist in dir (creating
// it if absent), per internal/recovery.Run, then prepares it for continued
// operation. ctx bounds only this filesystem bootstrap work; it is never
// threaded into Set/Get/Del.
func Open(ctx context.Context, dir string, optFns ...options.OptionFunc) (*Engine, error) {
	opts := options.NewDefaultOptions()
	options.WithDataDir(dir)(&opts)
	for _, fn := range optFns {
		fn(&opts)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Infow("opening engine", "dataDir", opts.DataDir, "segmentSize", opts.SegmentSize)

	result, err := recovery.Run(opts.DataDir, opts.SyncOnWrite, opts.TolerateTruncatedTail, log)
	if err != nil {
		return nil, err
	}

	log.Infow("engine opened", "tailSegment", result.TailOrdinal, "keys", result.Keydir.Len())

	return &Engine{
		dataDir: opts.DataDir,
		opts:    &opts,
		log:     log,
		kd:      result.Keydir,
		readers: result.Readers,
		writer:  result.Writer,
	}, nil
}

// Set builds a Set record, appends it, and upserts the keydir, rolling the
// tail segment first if it has reached capacity.
func (e *Engine) Set(key, value []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return errors.NewEngineError(nil, errors.ErrorCodeInternal, "engine is closed").WithOperation("Set")
	}

	if err := e.rollIfFull(); err != nil {
		return err
	}

	loc, err := e.writer.Append(record.NewSet(key, value))
	if err != nil {
		return err
	}

	e.kd.Insert(key, loc)
	return nil
}

// Get looks up key in the keydir; a miss returns (nil, nil). A hit reads
// the record through the reader set: if it decodes as a Set, its value is
// returned; if it decodes as a Del, the keydir promised something the
// segment no longer backs, which is an InvalidCommand inconsistency.
func (e *Engine) Get(key []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return nil, errors.NewEngineError(nil, errors.ErrorCodeInternal, "engine is closed").WithOperation("Get")
	}

	loc, ok := e.kd.Get(key)
	if !ok {
		return nil, nil
	}

	rec, err := e.readers.ReadAt(loc)
	if err != nil {
		return nil, err
	}

	if rec.Kind != record.KindSet {
		return nil, errors.NewInvalidCommandError(key, loc.SegmentOrdinal)
	}

	return rec.Value, nil
}

// Del appends a Del tombstone and removes the keydir entry. Deleting an
// absent key fails with KeyNotFound without writing anything.
func (e *Engine) Del(key []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return errors.NewEngineError(nil, errors.ErrorCodeInternal, "engine is closed").WithOperation("Del")
	}

	if _, ok := e.kd.Get(key); !ok {
		return errors.NewKeyNotFoundError(key)
	}

	if err := e.rollIfFull(); err != nil {
		return err
	}

	if _, err := e.writer.Append(record.NewDel(key)); err != nil {
		return err
	}

	e.kd.Remove(key)
	return nil
}

// Close is idempotent, guarded by a CAS on closed; it flushes and closes
// every segment file handle, aggregating per-file errors with multierr.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	if werr := e.writer.Close(); werr != nil {
		err = multierr.Append(err, werr)
	}
	if rerr := e.readers.Close(); rerr != nil {
		err = multierr.Append(err, rerr)
	}

	e.log.Infow("engine closed", "dataDir", e.dataDir)
	return err
}

// rollIfFull rolls the tail segment over to a new one if the writer has
// reached the configured capacity. Must be called with mu held.
func (e *Engine) rollIfFull() error {
	if !e.writer.IsFull(e.opts.SegmentSize) {
		return nil
	}

	newOrdinal := e.writer.Ordinal() + 1
	e.log.Infow("rolling segment", "from", e.writer.Ordinal(), "to", newOrdinal)

	// The new segment file must not already exist.
	newPath := filepath.Join(e.dataDir, segment.FileName(newOrdinal))
	exists, err := filesys.Exists(newPath)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to check for next segment file").
			WithPath(newPath)
	}
	if exists {
		return errors.NewStorageError(nil, errors.ErrorCodeIO, "next segment file already exists").
			WithPath(newPath).
			WithSegmentOrdinal(newOrdinal)
	}

	// Open (and register a reader for) the new tail before touching the old
	// one: if either step fails, e.writer is left untouched and usable for
	// the next request instead of pointing at a closed file handle.
	newWriter, err := segment.OpenWriter(e.dataDir, newOrdinal, e.opts.SyncOnWrite, e.log)
	if err != nil {
		return err
	}

	if err := e.readers.Open(newOrdinal); err != nil {
		newWriter.Close()
		return err
	}

	// The new writer is already open and its reader registered, so swap it
	// in before closing the old one: a failure flushing/closing the old
	// file is reported but must not leave e.writer pointing at it either.
	oldWriter := e.writer
	e.writer = newWriter

	if err := oldWriter.Close(); err != nil {
		return err
	}
	return nil
}
