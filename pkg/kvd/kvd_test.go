package kvd

import (
	"bytes"
	"context"
	"testing"

	"github.com/iamNilotpal/kvd/pkg/errors"
)

func TestInstanceSetGetDelete(t *testing.T) {
	dir := t.TempDir()
	inst, err := NewInstance(context.Background(), dir)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	defer inst.Close()

	if err := inst.Set("name", []byte("Bob")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := inst.Get("name")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("Bob")) {
		t.Errorf("Get = %q, want Bob", got)
	}

	if err := inst.Delete("name"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err = inst.Get("name")
	if err != nil || got != nil {
		t.Errorf("Get after Delete = (%q, %v), want (nil, nil)", got, err)
	}
}

func TestInstanceDeleteOnAbsentKeyFails(t *testing.T) {
	dir := t.TempDir()
	inst, err := NewInstance(context.Background(), dir)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	defer inst.Close()

	err = inst.Delete("absent")
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if code := errors.GetErrorCode(err); code != errors.ErrorCodeKeyNotFound {
		t.Errorf("code = %v, want ErrorCodeKeyNotFound", code)
	}
}

func TestInstanceCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	inst, err := NewInstance(context.Background(), dir)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}

	if err := inst.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := inst.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
