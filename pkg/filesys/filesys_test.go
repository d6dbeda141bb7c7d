package filesys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDir(t *testing.T) {
	root := t.TempDir()

	tt := []struct {
		name    string
		path    string
		force   bool
		wantErr bool
	}{
		{name: "fresh directory", path: filepath.Join(root, "fresh"), force: false, wantErr: false},
		{name: "force over existing directory", path: filepath.Join(root, "fresh"), force: true, wantErr: false},
		{name: "nested directory", path: filepath.Join(root, "a", "b", "c"), force: false, wantErr: false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := CreateDir(tc.path, 0755, tc.force)
			if (err != nil) != tc.wantErr {
				t.Fatalf("CreateDir(%q, force=%v) error = %v, wantErr %v", tc.path, tc.force, err, tc.wantErr)
			}
			if err == nil {
				info, statErr := os.Stat(tc.path)
				if statErr != nil || !info.IsDir() {
					t.Fatalf("CreateDir(%q) did not create a directory", tc.path)
				}
			}
		})
	}
}

func TestCreateDirRejectsExistingFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := CreateDir(path, 0755, true)
	if err != ErrIsNotDir {
		t.Fatalf("CreateDir over an existing file = %v, want ErrIsNotDir", err)
	}
}

func TestCreateDirWithoutForceOnExisting(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "dup")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	if err := CreateDir(path, 0755, false); err == nil {
		t.Fatal("CreateDir(force=false) on an existing directory: want error, got nil")
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	present := filepath.Join(root, "present")
	if err := os.WriteFile(present, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	absent := filepath.Join(root, "absent")

	tt := []struct {
		path string
		want bool
	}{
		{present, true},
		{absent, false},
	}

	for _, tc := range tt {
		got, err := Exists(tc.path)
		if err != nil {
			t.Fatalf("Exists(%q): %v", tc.path, err)
		}
		if got != tc.want {
			t.Errorf("Exists(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
