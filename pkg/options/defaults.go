package options

const (
	// DefaultDataDir is used when no data directory is configured.
	DefaultDataDir = "/var/lib/kvd"

	// MinSegmentSize is the smallest accepted rotation threshold (1KB).
	MinSegmentSize uint64 = 1024

	// MaxSegmentSize is the largest accepted rotation threshold (1GB).
	MaxSegmentSize uint64 = 1 * 1024 * 1024 * 1024

	// DefaultSegmentSize is the reference rotation threshold: 1024 bytes.
	DefaultSegmentSize uint64 = 1024

	// DefaultListenAddr is the TCP address cmd/kvd serve binds when neither
	// the config file, the environment, nor --addr sets one.
	DefaultListenAddr = ":6380"
)

// defaultOptions holds the package defaults.
var defaultOptions = Options{
	DataDir:               DefaultDataDir,
	SegmentSize:           DefaultSegmentSize,
	SyncOnWrite:           false,
	TolerateTruncatedTail: false,
	ListenAddr:            DefaultListenAddr,
}

// NewDefaultOptions returns a copy of the package defaults.
func NewDefaultOptions() Options {
	return defaultOptions
}
