package seginfo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateNameParseSegmentOrdinalRoundTrip(t *testing.T) {
	tt := []uint64{0, 1, 42, 1000000}

	for _, ordinal := range tt {
		name := GenerateName(ordinal)
		got, ok := ParseSegmentOrdinal(name)
		if !ok {
			t.Errorf("ParseSegmentOrdinal(%q) = not ok, want ordinal %d", name, ordinal)
			continue
		}
		if got != ordinal {
			t.Errorf("ParseSegmentOrdinal(%q) = %d, want %d", name, got, ordinal)
		}
	}
}

func TestParseSegmentOrdinalRejects(t *testing.T) {
	tt := []string{
		"kvd_01.wal",        // leading zero
		"kvd_-1.wal",        // negative
		"kvd_1.log",         // wrong extension
		"wal_1.wal",         // wrong prefix
		"kvd_1",             // missing extension
		"kvd_.wal",          // missing ordinal
		"kvd_1a.wal",        // trailing garbage
		"",                  // empty
		"notes.txt",         // unrelated file
		"kvd_0.wal.bak",     // extra suffix
	}

	for _, name := range tt {
		if _, ok := ParseSegmentOrdinal(name); ok {
			t.Errorf("ParseSegmentOrdinal(%q) = ok, want rejection", name)
		}
	}
}

// TestParseSegmentOrdinalMatchesBaseNameOnly exercises the fix for the
// distilled spec's is_wal_file bug: a directory component that happens to
// look like a segment name must not cause a match.
func TestParseSegmentOrdinalMatchesBaseNameOnly(t *testing.T) {
	path := filepath.Join("kvd_0.wal", "notes.txt")
	if _, ok := ParseSegmentOrdinal(path); ok {
		t.Errorf("ParseSegmentOrdinal(%q) = ok, want rejection (matches dir component, not base name)", path)
	}

	path = filepath.Join("/data/kvd_shard", "kvd_3.wal")
	got, ok := ParseSegmentOrdinal(path)
	if !ok || got != 3 {
		t.Errorf("ParseSegmentOrdinal(%q) = (%d, %v), want (3, true)", path, got, ok)
	}
}

func TestListSegmentOrdinals(t *testing.T) {
	dir := t.TempDir()

	names := []string{"kvd_0.wal", "kvd_2.wal", "kvd_1.wal", "README.md", "kvd_01.wal"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("WriteFile(%q): %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "kvd_9.wal"), 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	got, err := ListSegmentOrdinals(dir)
	if err != nil {
		t.Fatalf("ListSegmentOrdinals: %v", err)
	}

	want := []uint64{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("ListSegmentOrdinals = %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("ListSegmentOrdinals[%d] = %d, want %d", i, got[i], w)
		}
	}
}
