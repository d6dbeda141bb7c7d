// Package config loads kvd's tunable parameters from a YAML file, layering
// in KVD_-prefixed environment variable overrides, via
// github.com/spf13/viper, and validates the result before handing callers
// a slice of options.OptionFunc ready to pass to engine.Open.
//
// Grounded on original_source/src/server.rs::Server::new, which merges a
// config.Config file into settings and reads wal_dir out of it — the
// Go rendition generalizes that one field into the full options.Options
// surface and adds env-var layering, since viper makes that close to free.
package config

import (
	"strings"

	"github.com/spf13/viper"

	kvderrors "github.com/iamNilotpal/kvd/pkg/errors"
	"github.com/iamNilotpal/kvd/pkg/options"
)

// Config is the on-disk/env-sourced shape of kvd's configuration. Field
// names and mapstructure tags mirror pkg/options.Options so viper can
// unmarshal directly into it.
type Config struct {
	DataDir               string `mapstructure:"dataDir"`
	SegmentSize           uint64 `mapstructure:"segmentSize"`
	SyncOnWrite           bool   `mapstructure:"syncOnWrite"`
	TolerateTruncatedTail bool   `mapstructure:"tolerateTruncatedTail"`
	ListenAddr            string `mapstructure:"listenAddr"`
}

// Load reads configPath (a YAML file; may be empty to skip file loading
// entirely and rely on defaults plus environment overrides), merges in any
// KVD_-prefixed environment variables, validates the result, and returns
// the equivalent options.OptionFunc values.
func Load(configPath string) ([]options.OptionFunc, error) {
	v := viper.New()
	v.SetEnvPrefix("KVD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := options.NewDefaultOptions()
	v.SetDefault("dataDir", defaults.DataDir)
	v.SetDefault("segmentSize", defaults.SegmentSize)
	v.SetDefault("syncOnWrite", defaults.SyncOnWrite)
	v.SetDefault("tolerateTruncatedTail", defaults.TolerateTruncatedTail)
	v.SetDefault("listenAddr", defaults.ListenAddr)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, kvderrors.NewEngineError(err, kvderrors.ErrorCodeConfig, "failed to read config file").
				WithOperation("Load").
				WithDetail("path", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, kvderrors.NewEngineError(err, kvderrors.ErrorCodeConfig, "failed to unmarshal config").
			WithOperation("Load")
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return []options.OptionFunc{
		options.WithDataDir(cfg.DataDir),
		options.WithSegmentSize(cfg.SegmentSize),
		options.WithSyncOnWrite(cfg.SyncOnWrite),
		options.WithTolerateTruncatedTail(cfg.TolerateTruncatedTail),
		options.WithListenAddr(cfg.ListenAddr),
	}, nil
}

// validate enforces the one load-bearing contract the core depends on
// (a non-empty dataDir) plus sanity bounds on the remaining tunables, each
// surfaced as a *pkg/errors.ValidationError so callers can tell a
// misconfiguration apart from an I/O failure.
func validate(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return kvderrors.NewRequiredFieldError("dataDir")
	}

	if cfg.SegmentSize < options.MinSegmentSize || cfg.SegmentSize > options.MaxSegmentSize {
		return kvderrors.NewFieldRangeError(
			"segmentSize", cfg.SegmentSize, options.MinSegmentSize, options.MaxSegmentSize,
		)
	}

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return kvderrors.NewRequiredFieldError("listenAddr")
	}
	if !strings.HasPrefix(cfg.ListenAddr, ":") && !strings.Contains(cfg.ListenAddr, ":") {
		return kvderrors.NewFieldFormatError("listenAddr", cfg.ListenAddr, "host:port or :port")
	}

	return nil
}
