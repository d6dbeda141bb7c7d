package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/kvd/pkg/errors"
	"github.com/iamNilotpal/kvd/pkg/options"
)

func applyOpts(fns []options.OptionFunc) options.Options {
	o := options.NewDefaultOptions()
	for _, fn := range fns {
		fn(&o)
	}
	return o
}

func TestLoadDefaultsWithNoFile(t *testing.T) {
	fns, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := applyOpts(fns)
	want := options.NewDefaultOptions()
	if got != want {
		t.Errorf("Load(\"\") = %+v, want defaults %+v", got, want)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kvd.yaml")
	content := "dataDir: /tmp/my-kvd\nsegmentSize: 4096\nsyncOnWrite: true\nlistenAddr: 127.0.0.1:7000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fns, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := applyOpts(fns)
	if got.DataDir != "/tmp/my-kvd" {
		t.Errorf("DataDir = %q, want /tmp/my-kvd", got.DataDir)
	}
	if got.SegmentSize != 4096 {
		t.Errorf("SegmentSize = %d, want 4096", got.SegmentSize)
	}
	if !got.SyncOnWrite {
		t.Error("SyncOnWrite = false, want true")
	}
	if got.ListenAddr != "127.0.0.1:7000" {
		t.Errorf("ListenAddr = %q, want 127.0.0.1:7000", got.ListenAddr)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kvd.yaml")
	content := "dataDir: /tmp/from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("KVD_DATADIR", "/tmp/from-env")

	fns, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := applyOpts(fns)
	if got.DataDir != "/tmp/from-env" {
		t.Errorf("DataDir = %q, want /tmp/from-env (env override)", got.DataDir)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/kvd.yaml")
	if err == nil {
		t.Fatal("want error for missing config file, got nil")
	}
	if code := errors.GetErrorCode(err); code != errors.ErrorCodeConfig {
		t.Errorf("code = %v, want ErrorCodeConfig", code)
	}
}

func TestValidateRejectsEmptyDataDir(t *testing.T) {
	t.Setenv("KVD_DATADIR", " ")
	_, err := Load("")
	if err == nil {
		t.Fatal("want error for blank dataDir, got nil")
	}
	if code := errors.GetErrorCode(err); code != errors.ErrorCodeInvalidInput {
		t.Errorf("code = %v, want ErrorCodeInvalidInput", code)
	}
}

func TestValidateRejectsSegmentSizeOutOfRange(t *testing.T) {
	t.Setenv("KVD_SEGMENTSIZE", "1")
	_, err := Load("")
	if err == nil {
		t.Fatal("want error for out-of-range segmentSize, got nil")
	}
	if code := errors.GetErrorCode(err); code != errors.ErrorCodeInvalidInput {
		t.Errorf("code = %v, want ErrorCodeInvalidInput", code)
	}
}
