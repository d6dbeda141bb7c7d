// Package options defines the tunable knobs for the kvd engine: the data
// directory, segment rotation threshold, durability/recovery policy, and
// the dispatcher's listen address. Every datum here is engine-internal or
// boundary-internal tuning — none of it is part of the wire protocol.
package options

import (
	"strings"

	"go.uber.org/zap"
)

// Options holds every configurable parameter accepted by Engine.Open and
// cmd/kvd. Only DataDir is load-bearing; everything else has a workable
// default.
type Options struct {
	// DataDir is the directory segments are read from and written to.
	DataDir string `mapstructure:"dataDir"`

	// SegmentSize is the soft capacity threshold, in bytes, at which the
	// tail segment rolls over to a new one. Reference value: 1024.
	SegmentSize uint64 `mapstructure:"segmentSize"`

	// SyncOnWrite, when true, fsyncs the tail file after every Append in
	// addition to the unconditional flush. Default false, matching the
	// distilled spec's flush-only durability.
	SyncOnWrite bool `mapstructure:"syncOnWrite"`

	// TolerateTruncatedTail, when true, lets Open recover from a segment
	// whose final record is short or fails its checksum by truncating the
	// tail file back to the last fully-decoded record boundary, instead of
	// failing Open with a Serde error.
	TolerateTruncatedTail bool `mapstructure:"tolerateTruncatedTail"`

	// ListenAddr is the TCP address cmd/kvd serve binds when run without
	// --stdin; --addr overrides it. Unused by the engine itself.
	ListenAddr string `mapstructure:"listenAddr"`

	// Logger receives the engine's structured log output. Never populated
	// from a config file or environment variable; set it with WithLogger.
	// A nil Logger is replaced with a no-op logger at Open.
	Logger *zap.SugaredLogger `mapstructure:"-"`
}

// OptionFunc mutates an Options value. Functional-options pattern adapted
// from iamNilotpal-ignite/pkg/options.
type OptionFunc func(*Options)

// WithDefaultOptions applies every package default. Callers building an
// Options from scratch (outside of internal/config) should apply this
// first and layer overrides on top.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		defaults := NewDefaultOptions()
		*o = defaults
	}
}

// WithDataDir sets the data directory, ignoring a blank value.
func WithDataDir(dir string) OptionFunc {
	return func(o *Options) {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			o.DataDir = dir
		}
	}
}

// WithSegmentSize sets the rotation threshold, ignoring a value outside
// [MinSegmentSize, MaxSegmentSize].
func WithSegmentSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size >= MinSegmentSize && size <= MaxSegmentSize {
			o.SegmentSize = size
		}
	}
}

// WithSyncOnWrite sets the fsync-per-append policy.
func WithSyncOnWrite(enabled bool) OptionFunc {
	return func(o *Options) {
		o.SyncOnWrite = enabled
	}
}

// WithTolerateTruncatedTail sets the truncated-tail recovery policy.
func WithTolerateTruncatedTail(enabled bool) OptionFunc {
	return func(o *Options) {
		o.TolerateTruncatedTail = enabled
	}
}

// WithListenAddr sets the TCP listen address, ignoring a blank value.
func WithListenAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.ListenAddr = addr
		}
	}
}

// WithLogger sets the logger the engine reports through, ignoring a nil
// value.
func WithLogger(log *zap.SugaredLogger) OptionFunc {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}
