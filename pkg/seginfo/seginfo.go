// Package seginfo names and parses segment filenames.
//
// Filename format: kvd_<n>.wal, where <n> is a non-negative decimal integer
// with no leading zeros (matching 0|[1-9][0-9]*). Any other file in the
// data directory is ignored by the core.
//
// ParseSegmentOrdinal matches against filepath.Base, not the full path.
// original_source/src/store.rs checked path.starts_with("kvd_") against
// the whole Path, which is true for any file whose *directory* happens to
// start with "kvd_" regardless of its own name — fixed here.
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// namePattern matches exactly the segment filename grammar: kvd_ followed
// by a non-negative integer with no leading zeros, followed by .wal.
var namePattern = regexp.MustCompile(`^kvd_(0|[1-9][0-9]*)\.wal$`)

// GenerateName renders the on-disk filename for ordinal.
func GenerateName(ordinal uint64) string {
	return fmt.Sprintf("kvd_%d.wal", ordinal)
}

// ParseSegmentOrdinal extracts the ordinal from path's base name, reporting
// false if the base name doesn't match the segment filename grammar.
func ParseSegmentOrdinal(path string) (uint64, bool) {
	name := filepath.Base(path)

	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}

	ordinal, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ordinal, true
}

// ListSegmentOrdinals reads dataDir and returns every ordinal whose file
// name matches the segment grammar, sorted ascending. Unparseable entries
// — including subdirectories and unrelated files — are discarded silently.
func ListSegmentOrdinals(dataDir string) ([]uint64, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}

	var ordinals []uint64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ordinal, ok := ParseSegmentOrdinal(entry.Name()); ok {
			ordinals = append(ordinals, ordinal)
		}
	}

	sort.Slice(ordinals, func(i, j int) bool { return ordinals[i] < ordinals[j] })
	return ordinals, nil
}
